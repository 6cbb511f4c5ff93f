package census

import "encoding/json"

const redacted = "REDACTED"

// Credentials holds the API key used to authenticate with the Census API.
// The key is immutable once constructed and is redacted from all textual
// and JSON renderings so it cannot leak into logs or error messages.
type Credentials struct {
	apiKey string
}

// NewCredentials returns credentials for the given Census API key.
func NewCredentials(apiKey string) Credentials {
	return Credentials{apiKey: apiKey}
}

// GetClient returns a newly instantiated client for working with the Census API.
func (c Credentials) GetClient(opts ...ClientOption) *Client {
	return NewClient(c, opts...)
}

func (c Credentials) String() string {
	return "census.Credentials{apiKey:" + redacted + "}"
}

// GoString redacts the API key from %#v output.
func (c Credentials) GoString() string {
	return c.String()
}

// MarshalJSON redacts the API key.
func (c Credentials) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{"apiKey": redacted})
}
