package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Price 接受 JSON 字串或數字，統一保存為十進位字串
type Price string

func (p *Price) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = Price(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("price must be a string or number")
	}
	*p = Price(n.String())
	return nil
}

func (p *Price) StringPtr() *string {
	if p == nil {
		return nil
	}
	s := string(*p)
	return &s
}
