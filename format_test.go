package tempo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "0", FormatAmount(0))
	assert.Equal(t, "500", FormatAmount(500))
	assert.Equal(t, "999", FormatAmount(999))
	assert.Equal(t, "1.0K", FormatAmount(1_000))
	assert.Equal(t, "1.2K", FormatAmount(1_234))
	assert.Equal(t, "5.0K", FormatAmount(5_000))
	assert.Equal(t, "5.0M", FormatAmount(5_000_000))
	assert.Equal(t, "5.0B", FormatAmount(5_000_000_000))
	assert.Equal(t, "-42", FormatAmount(-42))
}
