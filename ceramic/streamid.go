package ceramic

import (
	"fmt"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multibase"
	"github.com/multiformats/go-varint"
)

// StreamIdCodec is the multicodec code identifying a Ceramic StreamID.
const StreamIdCodec = 206

// StreamId is the decoded form of a Ceramic StreamID string: the stream type
// and the genesis commit CID, multibase-encoded together.
type StreamId struct {
	Type    uint64
	Genesis cid.Cid
}

func (s StreamId) String() string {
	buf := varint.ToUvarint(StreamIdCodec)
	buf = append(buf, varint.ToUvarint(s.Type)...)
	buf = append(buf, s.Genesis.Bytes()...)
	streamId, _ := multibase.Encode(multibase.Base36, buf)
	return streamId
}

// ParseStreamId decodes and validates a StreamID string.
func ParseStreamId(streamId string) (*StreamId, error) {
	encoding, decodedBytes, err := multibase.Decode(streamId)
	if err != nil {
		return nil, fmt.Errorf("parseStreamId: error decoding stream id %s: %v", streamId, err)
	}
	if encoding != multibase.Base36 {
		return nil, fmt.Errorf("parseStreamId: unexpected multibase encoding %d for stream id %s", encoding, streamId)
	}
	codec, codecLen, err := varint.FromUvarint(decodedBytes)
	if err != nil {
		return nil, fmt.Errorf("parseStreamId: error reading codec from stream id %s: %v", streamId, err)
	}
	if codec != StreamIdCodec {
		return nil, fmt.Errorf("parseStreamId: unexpected codec %d for stream id %s", codec, streamId)
	}
	streamType, typeLen, err := varint.FromUvarint(decodedBytes[codecLen:])
	if err != nil {
		return nil, fmt.Errorf("parseStreamId: error reading stream type from stream id %s: %v", streamId, err)
	}
	genesisCid, err := cid.Cast(decodedBytes[codecLen+typeLen:])
	if err != nil {
		return nil, fmt.Errorf("parseStreamId: error reading genesis cid from stream id %s: %v", streamId, err)
	}
	return &StreamId{Type: streamType, Genesis: genesisCid}, nil
}

// ParseCommitCid validates a commit CID string and returns its canonical form.
func ParseCommitCid(commitCid string) (string, error) {
	parsedCid, err := cid.Parse(commitCid)
	if err != nil {
		return "", fmt.Errorf("parseCommitCid: invalid commit cid %s: %v", commitCid, err)
	}
	return parsedCid.String(), nil
}
