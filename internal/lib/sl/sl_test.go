package sl_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/sitepay-client/internal/lib/sl"
)

func TestErr_ReturnsCorrectAttr(t *testing.T) {
	err := errors.New("something went wrong")
	attr := sl.Err(err)

	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, slog.StringValue("something went wrong"), attr.Value)
}

func TestErr_NilError(t *testing.T) {
	assert.Panics(t, func() {
		_ = sl.Err(nil)
	})
}

func TestSecret_MasksLongValue(t *testing.T) {
	attr := sl.Secret("api_key", "sk_live_abcdef123456")

	assert.Equal(t, "api_key", attr.Key)
	assert.Equal(t, slog.StringValue("sk_live_..."), attr.Value)
}

func TestSecret_ShortValueUnchanged(t *testing.T) {
	attr := sl.Secret("api_key", "short")

	assert.Equal(t, slog.StringValue("short"), attr.Value)
}
