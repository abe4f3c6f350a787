package main

import (
	"encoding/json"
	"io/ioutil"
	"strings"

	"github.com/juju/errors"
	"gopkg.in/yaml.v2"
)

type creds struct {
	APIKey    string `json:"api_key" yaml:"api_key"`
	SecretKey string `json:"secret_key" yaml:"secret_key"`
}

// parseCreds parses a credentials file; example contents:
//
// api_key: foofoofoofoo
// secret_key: YmFyYmFyYmFyYmFy
//
// Files ending in .json are parsed as JSON with the same two properties.
func parseCreds(filename string) (*creds, error) {
	data, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, errors.Annotatef(err, "reading creds file %q", filename)
	}

	ret := creds{}
	if strings.HasSuffix(filename, ".json") {
		if err := json.Unmarshal(data, &ret); err != nil {
			return nil, errors.Annotatef(err, "parsing JSON from %q", filename)
		}
	} else {
		if err := yaml.Unmarshal(data, &ret); err != nil {
			return nil, errors.Annotatef(err, "parsing YAML from %q", filename)
		}
	}

	return &ret, nil
}
