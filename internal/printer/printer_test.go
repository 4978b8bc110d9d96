package printer

import (
	"bytes"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func plain(t *testing.T) {
	t.Helper()
	saved := Color
	SwitchToPlain()
	t.Cleanup(func() { Color = saved })
}

func TestLevels(t *testing.T) {
	plain(t)
	var buf bytes.Buffer
	p := NewP(&buf)

	p.Infoln("found", "openapi.yaml")
	p.Warningln("careful")
	p.Errorln("broken")
	p.Infof("%d definitions\n", 2)
	p.Warningf("%s\n", "slow")
	p.Errorf("%s\n", "failed")
	p.RawOutput("raw")

	assert.Equal(t, "[INFO] found openapi.yaml\n"+
		"[WARNING] careful\n"+
		"[ERROR] broken\n"+
		"[INFO] 2 definitions\n"+
		"[WARNING] slow\n"+
		"[ERROR] failed\n"+
		"raw\n", buf.String())
}

func TestDebugFollowsViper(t *testing.T) {
	plain(t)
	t.Cleanup(viper.Reset)
	var buf bytes.Buffer
	p := NewP(&buf)

	p.Debugln("hidden")
	p.Debugf("%s\n", "hidden")
	assert.Empty(t, buf.String())

	viper.Set("debug", true)
	p.Debugln("shown")
	p.Debugf("%s\n", "too")
	assert.Equal(t, "[DEBUG] shown\n[DEBUG] too\n", buf.String())
}

func TestColor(t *testing.T) {
	saved := Color
	t.Cleanup(func() { Color = saved })
	var buf bytes.Buffer
	NewP(&buf).Errorln("x")
	assert.Contains(t, buf.String(), "\x1b[")

	SwitchToPlain()
	buf.Reset()
	NewP(&buf).Errorln("x")
	assert.Equal(t, "[ERROR] x\n", buf.String())
}
