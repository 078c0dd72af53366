// Package savestate reads and writes simulation states as save state
// files. A file is a small header followed by the state's wire encoding,
// optionally zstd compressed; the variant is detected on load by magic.
package savestate

import (
	"bytes"
	"fmt"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/tastools/tminterface-go/pkg/protocol"
	"github.com/tastools/tminterface-go/pkg/simstate"
)

var (
	magicRaw        = []byte("TMIS")
	magicCompressed = []byte("TMIZ")
)

// formatVersion is bumped when the file layout changes.
const formatVersion int32 = 1

// encodeCapacity bounds the checkpoint vectors in the encoded state. It
// is far above anything a real map produces.
const encodeCapacity = 1 << 24

// Encode returns the wire encoding of a state.
func Encode(state *simstate.SimState) []byte {
	msg := protocol.NewMessage(protocol.AnyMessage)
	simstate.Write(msg, state, encodeCapacity)
	return msg.Payload()
}

// Decode parses a wire encoded state.
func Decode(data []byte) (*simstate.SimState, error) {
	r := protocol.NewReader(data)
	state := simstate.Read(r, true)
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("failed to decode state: %v", err)
	}
	return state, nil
}

// Save writes a state to a save state file.
func Save(path string, state *simstate.SimState) error {
	return write(path, magicRaw, Encode(state))
}

// SaveCompressed writes a zstd compressed save state file.
func SaveCompressed(path string, state *simstate.SimState) error {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return fmt.Errorf("failed to create zstd writer: %v", err)
	}
	defer enc.Close()

	compressed := enc.EncodeAll(Encode(state), nil)
	return write(path, magicCompressed, compressed)
}

// Load reads a save state file written by Save or SaveCompressed.
func Load(path string) (*simstate.SimState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read save state file: %v", err)
	}
	if len(data) < len(magicRaw)+4 {
		return nil, fmt.Errorf("file %s is too short to be a save state", path)
	}

	magic := data[:len(magicRaw)]
	r := protocol.NewReader(data)
	r.Skip(len(magicRaw))
	version := r.ReadInt32()
	if version != formatVersion {
		return nil, fmt.Errorf("unsupported save state version %d", version)
	}
	payload := data[r.Offset():]

	switch {
	case bytes.Equal(magic, magicRaw):
		return Decode(payload)
	case bytes.Equal(magic, magicCompressed):
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd reader: %v", err)
		}
		defer dec.Close()

		raw, err := dec.DecodeAll(payload, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress save state: %v", err)
		}
		return Decode(raw)
	default:
		return nil, fmt.Errorf("file %s is not a save state", path)
	}
}

func write(path string, magic, payload []byte) error {
	msg := protocol.NewMessage(protocol.AnyMessage)
	msg.WriteBuffer(magic)
	msg.WriteInt32(formatVersion)
	msg.WriteBuffer(payload)
	if err := os.WriteFile(path, msg.Payload(), 0644); err != nil {
		return fmt.Errorf("failed to write save state file: %v", err)
	}
	return nil
}
