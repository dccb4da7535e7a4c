package embeddings

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
)

// Encode serialises a vector as little endian float64 values.
func Encode(vec []float64) ([]byte, error) {
	if err := ValidateEmbedding(vec); err != nil {
		return nil, err
	}

	buf := bytes.NewBuffer(make([]byte, 0, EncodedSize(len(vec))))
	if err := binary.Write(buf, binary.LittleEndian, vec); err != nil {
		return nil, errors.Wrap(err, "encoding embedding")
	}
	return buf.Bytes(), nil
}

// Decode is the inverse of Encode.
func Decode(data []byte) ([]float64, error) {
	if len(data) == 0 {
		return nil, errors.New("embedding data is empty")
	}
	if len(data)%8 != 0 {
		return nil, errors.Errorf("invalid embedding size: %d (not a multiple of 8)", len(data))
	}

	vec := make([]float64, len(data)/8)
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, vec); err != nil {
		return nil, errors.Wrap(err, "decoding embedding")
	}
	return vec, nil
}

// EncodedSize returns the encoded size in bytes of a vector.
func EncodedSize(dimensions int) int {
	return dimensions * 8
}

// ValidateEmbedding rejects empty vectors and non-finite values.
func ValidateEmbedding(vec []float64) error {
	if len(vec) == 0 {
		return errors.New("embedding vector is empty")
	}

	for i, val := range vec {
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return errors.Errorf("embedding contains invalid value at index %d: %v", i, val)
		}
	}

	return nil
}

// FromFloat32 widens a float32 vector as returned by embedding APIs.
func FromFloat32(vec []float32) []float64 {
	out := make([]float64, len(vec))
	for i, v := range vec {
		out[i] = float64(v)
	}
	return out
}
