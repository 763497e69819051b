package common

import "time"

const DefaultRpcWaitTime = 30 * time.Second

const ServiceName = "cas-client"
