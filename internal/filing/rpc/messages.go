// Package rpc declares the FilingService gRPC contract: its messages, their
// protobuf wire encoding and a hand-written service descriptor.
package rpc

import (
	"fmt"
	"unicode/utf8"

	e "github.com/gartstein/efiling/internal/filing/errors"
	"github.com/gartstein/efiling/internal/filing/models"
	"google.golang.org/protobuf/encoding/protowire"
)

// SubmitRequest carries one encoded filing.
type SubmitRequest struct {
	// TransactionID is chosen by the submitter and makes Submit idempotent.
	TransactionID string
	FilingType    models.FilingType
	// Payload is the filing as written by codec.Encode.
	Payload []byte
}

type SubmitResponse struct {
	SubmissionID string
	ReferenceID  string
	Accepted     bool
}

type GetSubmissionRequest struct {
	SubmissionID string
}

// SubmissionStatus reports where a submission stands with the registry.
type SubmissionStatus struct {
	SubmissionID string
	ReferenceID  string
	FilingType   models.FilingType
	Status       models.SubmissionStatus
	Rejections   []e.Rejection
}

func (r *SubmitRequest) Marshal() ([]byte, error) {
	var b []byte
	b = appendString(b, 1, r.TransactionID)
	b = appendVarint(b, 2, uint64(r.FilingType))
	b = appendBytes(b, 3, r.Payload)
	return b, nil
}

func (r *SubmitRequest) Unmarshal(b []byte) error {
	*r = SubmitRequest{}
	return scan(b, func(num protowire.Number, typ protowire.Type, v uint64, data []byte) error {
		switch num {
		case 1:
			return readString(typ, data, &r.TransactionID)
		case 2:
			if err := expect(typ, protowire.VarintType); err != nil {
				return err
			}
			r.FilingType = models.FilingType(int32(v))
		case 3:
			if err := expect(typ, protowire.BytesType); err != nil {
				return err
			}
			r.Payload = append([]byte(nil), data...)
		}
		return nil
	})
}

func (r *SubmitResponse) Marshal() ([]byte, error) {
	var b []byte
	b = appendString(b, 1, r.SubmissionID)
	b = appendString(b, 2, r.ReferenceID)
	if r.Accepted {
		b = appendVarint(b, 3, 1)
	}
	return b, nil
}

func (r *SubmitResponse) Unmarshal(b []byte) error {
	*r = SubmitResponse{}
	return scan(b, func(num protowire.Number, typ protowire.Type, v uint64, data []byte) error {
		switch num {
		case 1:
			return readString(typ, data, &r.SubmissionID)
		case 2:
			return readString(typ, data, &r.ReferenceID)
		case 3:
			if err := expect(typ, protowire.VarintType); err != nil {
				return err
			}
			r.Accepted = v != 0
		}
		return nil
	})
}

func (r *GetSubmissionRequest) Marshal() ([]byte, error) {
	return appendString(nil, 1, r.SubmissionID), nil
}

func (r *GetSubmissionRequest) Unmarshal(b []byte) error {
	*r = GetSubmissionRequest{}
	return scan(b, func(num protowire.Number, typ protowire.Type, _ uint64, data []byte) error {
		if num == 1 {
			return readString(typ, data, &r.SubmissionID)
		}
		return nil
	})
}

func (s *SubmissionStatus) Marshal() ([]byte, error) {
	var b []byte
	b = appendString(b, 1, s.SubmissionID)
	b = appendString(b, 2, s.ReferenceID)
	b = appendVarint(b, 3, uint64(s.FilingType))
	b = appendVarint(b, 4, uint64(s.Status))
	for _, r := range s.Rejections {
		var entry []byte
		entry = appendString(entry, 1, r.Code)
		entry = appendString(entry, 2, r.Message)
		entry = appendString(entry, 3, r.FieldPath)
		b = protowire.AppendTag(b, 5, protowire.BytesType)
		b = protowire.AppendBytes(b, entry)
	}
	return b, nil
}

func (s *SubmissionStatus) Unmarshal(b []byte) error {
	*s = SubmissionStatus{}
	return scan(b, func(num protowire.Number, typ protowire.Type, v uint64, data []byte) error {
		switch num {
		case 1:
			return readString(typ, data, &s.SubmissionID)
		case 2:
			return readString(typ, data, &s.ReferenceID)
		case 3:
			if err := expect(typ, protowire.VarintType); err != nil {
				return err
			}
			s.FilingType = models.FilingType(int32(v))
		case 4:
			if err := expect(typ, protowire.VarintType); err != nil {
				return err
			}
			s.Status = models.SubmissionStatus(int32(v))
		case 5:
			if err := expect(typ, protowire.BytesType); err != nil {
				return err
			}
			var r e.Rejection
			err := scan(data, func(num protowire.Number, typ protowire.Type, _ uint64, data []byte) error {
				switch num {
				case 1:
					return readString(typ, data, &r.Code)
				case 2:
					return readString(typ, data, &r.Message)
				case 3:
					return readString(typ, data, &r.FieldPath)
				}
				return nil
			})
			if err != nil {
				return err
			}
			s.Rejections = append(s.Rejections, r)
		}
		return nil
	})
}

func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendBytes(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

// scan calls fn for each field in b. Unknown fields are skipped.
func scan(b []byte, fn func(num protowire.Number, typ protowire.Type, v uint64, data []byte) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%w: %v", e.ErrDecode, protowire.ParseError(n))
		}
		m := protowire.ConsumeFieldValue(num, typ, b[n:])
		if m < 0 {
			return fmt.Errorf("%w: %v", e.ErrDecode, protowire.ParseError(m))
		}
		var (
			v    uint64
			data []byte
		)
		switch typ {
		case protowire.VarintType:
			v, _ = protowire.ConsumeVarint(b[n:])
		case protowire.BytesType:
			data, _ = protowire.ConsumeBytes(b[n:])
		}
		if err := fn(num, typ, v, data); err != nil {
			return err
		}
		b = b[n+m:]
	}
	return nil
}

func expect(got, want protowire.Type) error {
	if got != want {
		return fmt.Errorf("%w: wire type %d, want %d", e.ErrDecode, got, want)
	}
	return nil
}

func readString(typ protowire.Type, data []byte, dst *string) error {
	if err := expect(typ, protowire.BytesType); err != nil {
		return err
	}
	if !utf8.Valid(data) {
		return fmt.Errorf("%w: invalid UTF-8", e.ErrDecode)
	}
	*dst = string(data)
	return nil
}
