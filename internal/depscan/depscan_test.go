package depscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequiresExtractsStringLiterals(t *testing.T) {
	src := []byte(`
var util = require('./lib/util');
var cfg = require("./config.json");
const widgets = require('widgets');
require('./lib/util'); // duplicate
`)
	specs, err := Requires(src)
	require.NoError(t, err)
	assert.Equal(t, []string{"./config.json", "./lib/util", "widgets"}, specs)
}

func TestRequiresIgnoresDynamicSpecifiers(t *testing.T) {
	src := []byte(`
var name = 'x';
require(name);
require('./a' + suffix);
require();
notRequire('./b');
obj.require('./c');
`)
	specs, err := Requires(src)
	require.NoError(t, err)
	assert.Empty(t, specs)
}

func TestRequiresNestedCalls(t *testing.T) {
	src := []byte(`
function init() {
  if (cond) {
    var late = require('device/extras');
  }
  return require('./deep/mod.js');
}
`)
	specs, err := Requires(src)
	require.NoError(t, err)
	assert.Equal(t, []string{"./deep/mod.js", "device/extras"}, specs)
}

func TestRequiresEmptySource(t *testing.T) {
	specs, err := Requires([]byte(""))
	require.NoError(t, err)
	assert.Empty(t, specs)
}
