// Package printer displays messages to CLI users.
//
// Messages carry a colored level prefix and go to stderr by default, so
// that stdout stays reserved for documents and reports.
package printer

import (
	"fmt"
	"io"
	"os"

	"github.com/logrusorgru/aurora"
	"github.com/spf13/viper"
)

var (
	Stderr = NewP(os.Stderr)
	Stdout = NewP(os.Stdout)
	Color  = aurora.NewAurora(true)
)

func Infoln(args ...any) {
	Stderr.Infoln(args...)
}

func Warningln(args ...any) {
	Stderr.Warningln(args...)
}

func Errorln(args ...any) {
	Stderr.Errorln(args...)
}

func Debugln(args ...any) {
	Stderr.Debugln(args...)
}

func Infof(fmtString string, args ...any) {
	Stderr.Infof(fmtString, args...)
}

func Warningf(fmtString string, args ...any) {
	Stderr.Warningf(fmtString, args...)
}

func Errorf(fmtString string, args ...any) {
	Stderr.Errorf(fmtString, args...)
}

func Debugf(fmtString string, args ...any) {
	Stderr.Debugf(fmtString, args...)
}

type P interface {
	// Mimics the behavior of fmt.Println
	Infoln(args ...any)
	Warningln(args ...any)
	Errorln(args ...any)
	Debugln(args ...any)

	Infof(f string, args ...any)
	Warningf(f string, args ...any)
	Errorf(f string, args ...any)
	Debugf(f string, args ...any)

	// Output with no header
	RawOutput(args ...any)
}

type impl struct {
	out io.Writer
}

func NewP(out io.Writer) P {
	return impl{out: out}
}

func (p impl) ln(t string, args ...any) {
	newArgs := make([]any, 0, len(args)+1)
	newArgs = append(newArgs, t)
	newArgs = append(newArgs, args...)
	_, _ = fmt.Fprintln(p.out, newArgs...)
}

func (p impl) f(t, fmtString string, args ...any) {
	_, _ = fmt.Fprint(p.out, t)
	_, _ = fmt.Fprintf(p.out, fmtString, args...)
}

func (p impl) Infoln(args ...any) {
	p.ln(Color.Blue("[INFO]").String(), args...)
}

func (p impl) Warningln(args ...any) {
	p.ln(Color.Yellow("[WARNING]").String(), args...)
}

func (p impl) Errorln(args ...any) {
	p.ln(Color.Red("[ERROR]").String(), args...)
}

func (p impl) Debugln(args ...any) {
	if viper.GetBool("debug") {
		p.ln(Color.Magenta("[DEBUG]").String(), args...)
	}
}

func (p impl) Infof(fmtString string, args ...any) {
	p.f(Color.Blue("[INFO] ").String(), fmtString, args...)
}

func (p impl) Warningf(fmtString string, args ...any) {
	p.f(Color.Yellow("[WARNING] ").String(), fmtString, args...)
}

func (p impl) Errorf(fmtString string, args ...any) {
	p.f(Color.Red("[ERROR] ").String(), fmtString, args...)
}

func (p impl) Debugf(fmtString string, args ...any) {
	if viper.GetBool("debug") {
		p.f(Color.Magenta("[DEBUG] ").String(), fmtString, args...)
	}
}

func (p impl) RawOutput(args ...any) {
	_, _ = fmt.Fprintln(p.out, args...)
}

// SwitchToPlain turns off ANSI escapes, e.g. when stderr is not a terminal.
func SwitchToPlain() {
	Color = aurora.NewAurora(false)
}
