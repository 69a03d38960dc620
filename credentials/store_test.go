package credentials

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestStore(t *testing.T) {
	keyring.MockInit()
	store := NewStore("")

	_, err := store.Password("ada@acme.com")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Save("ada@acme.com", "s3cret"))

	got, err := store.Password("ada@acme.com")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", got)

	require.NoError(t, store.Save("ada@acme.com", "rotated"))
	got, err = store.Password("ada@acme.com")
	require.NoError(t, err)
	assert.Equal(t, "rotated", got)

	require.NoError(t, store.Delete("ada@acme.com"))
	_, err = store.Password("ada@acme.com")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, store.Delete("ada@acme.com"), ErrNotFound)
}

func TestStoreValidation(t *testing.T) {
	keyring.MockInit()
	store := NewStore("ziclient-test")

	_, err := store.Password("")
	assert.ErrorIs(t, err, ErrUsernameRequired)
	assert.ErrorIs(t, store.Save("", "x"), ErrUsernameRequired)
	assert.Error(t, store.Save("user", ""))
	assert.ErrorIs(t, store.Delete(""), ErrUsernameRequired)
}

func TestStoreKeychainFailure(t *testing.T) {
	boom := errors.New("keychain locked")
	keyring.MockInitWithError(boom)
	t.Cleanup(keyring.MockInit)

	_, err := NewStore("").Password("user")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrNotFound)
}

type staticSource map[string]string

func (s staticSource) Password(username string) (string, error) {
	if p, ok := s[username]; ok {
		return p, nil
	}
	return "", ErrNotFound
}

func TestResolve(t *testing.T) {
	source := staticSource{"user": "from-keychain"}

	tests := []struct {
		name       string
		configured string
		source     PasswordSource
		want       string
		wantErr    error
	}{
		{name: "configured wins", configured: "from-config", source: source, want: "from-config"},
		{name: "falls back to source", source: source, want: "from-keychain"},
		{name: "whitespace falls back", configured: "  ", source: source, want: "from-keychain"},
		{name: "no source", want: ""},
		{name: "source miss", source: staticSource{}, wantErr: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve("user", tt.configured, tt.source)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
