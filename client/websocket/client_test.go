package websocket

import (
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
)

func TestNewClientValidation(t *testing.T) {
	_, err := NewClient(&WSParams{SecretKey: "secret"})
	assert.Equal(t, ErrMissingAPIKey, errors.Cause(err))

	_, err = NewClient(&WSParams{APIKey: "key"})
	assert.Equal(t, ErrMissingSecretKey, errors.Cause(err))
}

func TestNewClientDefaults(t *testing.T) {
	client, err := NewClient(&WSParams{APIKey: "key", SecretKey: "secret"})
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, DefaultURL, client.URL())
	assert.Equal(t, DefaultRequestTimeout, client.params.RequestTimeout)
	assert.NotEmpty(t, client.ID())
	assert.NotNil(t, client.Bus())
	assert.False(t, client.IsLoggedIn())
}

func TestClientIDsDiffer(t *testing.T) {
	a, err := NewClient(&WSParams{APIKey: "key", SecretKey: "secret"})
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewClient(&WSParams{APIKey: "key", SecretKey: "secret"})
	if err != nil {
		t.Fatal(err)
	}

	assert.NotEqual(t, a.ID(), b.ID())
}

func TestClientWarnings(t *testing.T) {
	client, err := NewClient(&WSParams{APIKey: "key", SecretKey: "secret"})
	if err != nil {
		t.Fatal(err)
	}

	var first, second []string
	client.OnWarning(func(msg string) { first = append(first, msg) })
	client.OnWarning(func(msg string) { second = append(second, msg) })

	client.warn(nil)
	client.warn([]string{"a", "b"})

	assert.Equal(t, []string{"a", "b"}, first)
	assert.Equal(t, []string{"a", "b"}, second)
}
