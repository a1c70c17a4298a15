package orders

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// UnmarshalJSON accepts a submission posted as a JSON body. Fields may be
// strings or scalars, so flags can arrive as booleans and items as an array
// instead of its JSON text.
func (s *Submission) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name          fieldValue `json:"name"`
		Number        fieldValue `json:"number"`
		Mode          fieldValue `json:"mode"`
		TypeDineIn    fieldValue `json:"order_type_dinein"`
		TypePackaged  fieldValue `json:"order_type_packaged"`
		TypeContainer fieldValue `json:"order_type_container"`
		Items         fieldValue `json:"items"`
		Note          fieldValue `json:"note"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*s = Submission{
		Name:          string(raw.Name),
		Number:        string(raw.Number),
		Mode:          string(raw.Mode),
		TypeDineIn:    string(raw.TypeDineIn),
		TypePackaged:  string(raw.TypePackaged),
		TypeContainer: string(raw.TypeContainer),
		Items:         string(raw.Items),
		Note:          string(raw.Note),
	}
	return nil
}

// fieldValue is a JSON value flattened to the string a form field would carry.
// null, false and zero become "" so they leave a flag unset.
type fieldValue string

func (v *fieldValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*v = ""
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = fieldValue(s)
	case 'n', 'f':
		*v = ""
	case 't', '[', '{':
		*v = fieldValue(data)
	default:
		if f, err := strconv.ParseFloat(string(data), 64); err == nil && f == 0 {
			*v = ""
			return nil
		}
		*v = fieldValue(data)
	}
	return nil
}
