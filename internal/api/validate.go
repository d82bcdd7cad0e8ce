package api

import (
	"encoding/json"
	"net/url"
)

// ValidateURL accepts absolute http(s) URLs with a host.
func ValidateURL(field, raw string) error {
	if raw == "" {
		return Invalid(field, "is required")
	}
	u, err := url.ParseRequestURI(raw)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return Invalid(field, "must be a valid URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Invalid(field, "must be an http or https URL")
	}
	return nil
}

func unmarshalData(env *Response, out interface{}) error {
	if string(env.Data) == "null" {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}

// ignoreEmpty treats a missing data field as an empty list.
func ignoreEmpty(err error) error {
	if err == ErrEmptyReply {
		return nil
	}
	return err
}
