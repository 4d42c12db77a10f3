package kmod

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Load ensures the given kernel module is loaded, via modprobe. Loading an
// already loaded module is a no-op.
func Load(ctx context.Context, module string) error {
	if module == "" {
		return fmt.Errorf("no module name given")
	}

	if loaded(module) {
		return nil
	}

	output, err := exec.CommandContext(ctx, "modprobe", module).CombinedOutput()
	if err != nil {
		return fmt.Errorf("failed to load module %s: %w: %s",
			module, err, strings.TrimSpace(string(output)))
	}

	return nil
}

// loaded checks sysfs first so hosts with the driver built into the kernel
// do not depend on a modprobe binary being present.
func loaded(module string) bool {
	_, err := os.Stat(filepath.Join("/sys/module", strings.ReplaceAll(module, "-", "_")))
	return err == nil
}
