package ingestlog

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWarnfWritesPrefixedLine(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	l.Warnf("table %s too long", "data__x")
	assert.Equal(t, "WARN table data__x too long\n", buf.String())
}

func TestInfofWritesPrefixedLine(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	l.Infof("ingested %d rows", 42)
	assert.Equal(t, "INFO ingested 42 rows\n", buf.String())
}

func TestWarnFuncAdapts(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	warn := l.WarnFunc()
	warn("collision on data__x")
	assert.Equal(t, "WARN collision on data__x\n", buf.String())
}

func TestNewDefaultsToStderrWithoutPanicking(t *testing.T) {
	l := New(nil)
	assert.NotPanics(t, func() { l.Infof("hello") })
}
