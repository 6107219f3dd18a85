package outcome

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIOFailure(t *testing.T) {
	o := IOFailure(errors.New("open control.txt: permission denied"), "writing the control file")

	assert.False(t, o.OK)
	assert.Contains(t, o.Message, "I/O problem.")
	assert.Contains(t, o.Message, "permission denied")
	assert.Contains(t, o.Message, "Stopped while writing the control file.")
	assert.Error(t, o.Err())
}

func TestTemplateFailure(t *testing.T) {
	o := TemplateFailure(errors.New("control file template: no [NGSPHYPARTITION] directive found"), "parsing the control file")

	assert.False(t, o.OK)
	assert.Contains(t, o.Message, "Control file template problem.")
	assert.NotContains(t, o.Message, "I/O problem.")
	assert.Contains(t, o.Message, "Stopped while parsing the control file.")
}

func TestSuccessHasNoError(t *testing.T) {
	o := Success("done")
	assert.True(t, o.OK)
	assert.NoError(t, o.Err())
}
