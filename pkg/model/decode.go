package model

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

// DecodeResultSet reads a JSON array of objects. The token stream is walked
// by hand so that columns keep the order in which the fields were written.
func DecodeResultSet(body []byte) (*ResultSet, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	if err := expectDelim(dec, '['); err != nil {
		return nil, errors.Wrap(err, "response is not a JSON array")
	}

	rs := NewResultSet()
	for row := 0; dec.More(); row++ {
		fields, rec, err := decodeRecord(dec)
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", row)
		}
		rs.Append(fields, rec)
	}

	if err := expectDelim(dec, ']'); err != nil {
		return nil, err
	}
	if tok, err := dec.Token(); err != io.EOF {
		if err != nil {
			return nil, errors.Wrap(err, "trailing data")
		}
		return nil, errors.Errorf("trailing data after array: %v", tok)
	}
	return rs, nil
}

func decodeRecord(dec *json.Decoder) ([]string, Record, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, nil, errors.Wrap(err, "element is not an object")
	}
	rec := Record{}
	var fields []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, errors.Errorf("unexpected object key %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, nil, errors.Wrapf(err, "field %q", key)
		}
		var v Value
		if err := v.UnmarshalJSON(raw); err != nil {
			return nil, nil, errors.Wrapf(err, "field %q", key)
		}
		if !rec.Has(key) {
			fields = append(fields, key)
		}
		rec[key] = v
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, nil, err
	}
	return fields, rec, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return errors.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func (rs *ResultSet) UnmarshalJSON(data []byte) error {
	decoded, err := DecodeResultSet(data)
	if err != nil {
		return err
	}
	*rs = *decoded
	return nil
}
