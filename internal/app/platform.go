package app

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/atotto/clipboard"
	"github.com/dustin/go-humanize"

	"ccfiles/internal/scan"
)

// systemCollaborators is the production implementation of the side
// effects behind menu actions. Tests inject fakes instead.
type systemCollaborators struct{}

func (systemCollaborators) ReadFileContent(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.Size() > scan.MaxContentBytes {
		return "", fmt.Errorf("file is %s, over the %s ceiling",
			humanize.IBytes(uint64(info.Size())),
			humanize.IBytes(uint64(scan.MaxContentBytes)))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (systemCollaborators) WriteToClipboard(text string) error {
	return clipboard.WriteAll(text)
}

// openHandlerFn is swappable so tests never launch real applications.
var openHandlerFn = openHandlerImpl

func (systemCollaborators) OpenWithDefaultHandler(path string) error {
	return openHandlerFn(path)
}

func openHandlerImpl(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		if _, err := exec.LookPath("xdg-open"); err != nil {
			return errors.New("xdg-open not found (install xdg-utils)")
		}
		cmd = exec.Command("xdg-open", path)
	}
	// Detach: the viewer owns its own lifetime.
	return cmd.Start()
}
