// Package wire implements the frame codec: the pure translation
// between one Message and its encoded byte form.  No I/O, no state
// across calls.
//
// Framing policy: the entire input buffer is exactly one frame.  There
// is no length prefix and no delimiter, and a frame never spans two
// reads.  This matches the deployed peer protocol and is the system's
// principal limitation; transports size their read buffers so a whole
// datagram or segment fits in one read.
package wire

import (
	cbor "github.com/fxamacker/cbor/v2"

	"repomonc/internal/errors"
	"repomonc/message"
)

// Codec encodes and decodes Messages using canonical CBOR, so encoding
// is deterministic: equal messages always produce equal frames.
type Codec struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

// New constructs a Codec.  The only failure mode is invalid CBOR mode
// options, which would be a programming error.
func New() (*Codec, error) {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, err
	}
	dm, err := cbor.DecOptions{}.DecMode()
	if err != nil {
		return nil, err
	}
	return &Codec{enc: em, dec: dm}, nil
}

// Encode serializes one Message into a frame.  On failure it returns a
// CodecError for the caller to log; the caller drops the message and
// the pipeline continues.  Encoding never aborts a session.
func (c *Codec) Encode(m message.Message) ([]byte, error) {
	b, err := c.enc.Marshal(m)
	if err != nil {
		return nil, errors.WrapCodec(errors.OpEncode, err)
	}
	return b, nil
}

// Decode interprets the whole buffer as one frame.
//
// An empty buffer produces no message and no error.  A malformed
// buffer produces no message and a CodecError; the caller reports it
// and continues; decode failures never terminate the stream.
func (c *Codec) Decode(buf []byte) (*message.Message, error) {
	if len(buf) == 0 {
		return nil, nil
	}
	var m message.Message
	if err := c.dec.Unmarshal(buf, &m); err != nil {
		return nil, errors.WrapCodec(errors.OpDecode, err)
	}
	return &m, nil
}
