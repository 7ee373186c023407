package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"kintai/kintai"
)

type MacNotificator struct{}

func (no *MacNotificator) Notify(title string, message string) error {
	var errOut bytes.Buffer
	cmd := exec.Command("osascript", "-e", `display notification "`+message+`" with title "kintai" subtitle "`+title+`" sound name "Blow"`)
	cmd.Stderr = &errOut
	if err := cmd.Run(); err != nil {
		return fmt.Errorf(errOut.String())
	}
	return nil
}

type StderrNotificator struct{}

func (no *StderrNotificator) Notify(title string, message string) error {
	_, err := fmt.Fprintf(os.Stderr, "%s: %s\n", title, message)
	return err
}

func newNotificator() kintai.Notificator {
	if runtime.GOOS == "darwin" {
		return &MacNotificator{}
	}
	return &StderrNotificator{}
}

// StdinConfirmer prompts on stderr and reads a y/N answer.
type StdinConfirmer struct {
	In  io.Reader
	Out io.Writer
}

func (c *StdinConfirmer) Confirm(message string) bool {
	fmt.Fprintf(c.Out, "%s [y/N]: ", message)
	line, err := bufio.NewReader(c.In).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// AutoConfirmer answers yes unconditionally; used where no terminal is
// attached so an over-limit break can never stay wedged open.
type AutoConfirmer struct{}

func (c *AutoConfirmer) Confirm(string) bool {
	return true
}

func newConfirmer() kintai.Confirmer {
	fi, err := os.Stdin.Stat()
	if err != nil || fi.Mode()&os.ModeCharDevice == 0 {
		return &AutoConfirmer{}
	}
	return &StdinConfirmer{In: os.Stdin, Out: os.Stderr}
}
