package logger

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestInit(t *testing.T) {
	defer Init(Options{})

	var buf bytes.Buffer
	Init(Options{Verbose: true, DisableColor: true, Output: &buf})

	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	logrus.WithField("term", "shoe").Debug("fetching page")
	assert.Contains(t, buf.String(), "term=shoe")

	buf.Reset()
	Init(Options{DisableColor: true, Output: &buf})
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
	logrus.Debug("hidden")
	assert.Empty(t, buf.String())
}
