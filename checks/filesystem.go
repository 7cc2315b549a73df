package checks

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/jonwraymond/sitehealth/health"
)

// MonitoringConnected reports whether the monitoring agent is installed,
// detected by the presence of its directory.
type MonitoringConnected struct {
	health.Base
	dir string
}

// NewMonitoringConnected creates the core.monitoring_connected check.
func NewMonitoringConnected(dir string) *MonitoringConnected {
	return &MonitoringConnected{
		Base: health.NewBase(ProviderSlug, "monitoring_connected", health.CategorySystem, "Uptime monitoring"),
		dir:  dir,
	}
}

// Perform stats the agent directory.
func (c *MonitoringConnected) Perform(context.Context) (health.Result, error) {
	if c.dir == "" {
		return c.Warning("The site is not connected to an uptime monitoring service."), nil
	}

	info, err := os.Stat(c.dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return c.Warning("The site is not connected to an uptime monitoring service."), nil
	case err != nil:
		return health.Result{}, err
	case !info.IsDir():
		return c.Warning(fmt.Sprintf("The site is not connected to an uptime monitoring service: %s is not a directory.", c.dir)), nil
	}
	return c.Good("The site is connected to an uptime monitoring service that watches it 24/7."), nil
}

// TempWritable verifies the temporary directory accepts new files.
type TempWritable struct {
	health.Base
	dir string
}

// NewTempWritable creates the core.temp_writable check. An empty dir checks
// os.TempDir at run time.
func NewTempWritable(dir string) *TempWritable {
	return &TempWritable{
		Base: health.NewBase(ProviderSlug, "temp_writable", health.CategorySystem, "Temporary directory"),
		dir:  dir,
	}
}

// Perform creates, writes and removes a probe file.
func (c *TempWritable) Perform(context.Context) (health.Result, error) {
	dir := c.dir
	if dir == "" {
		dir = os.TempDir()
	}

	if err := probeWrite(dir); err != nil {
		return c.Critical(fmt.Sprintf("The temporary directory %s is not writable: %v", dir, err)), nil
	}
	return c.Good("The temporary directory is writable."), nil
}

func probeWrite(dir string) (err error) {
	f, err := os.CreateTemp(dir, ".sitehealth-probe-*")
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, os.Remove(f.Name()))
	}()

	if _, err := f.WriteString("ok"); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// ConfigPermissions flags configuration files other users can read or
// modify. Configuration files commonly hold database credentials.
type ConfigPermissions struct {
	health.Base
	path string
}

// NewConfigPermissions creates the core.config_permissions check.
func NewConfigPermissions(path string) *ConfigPermissions {
	return &ConfigPermissions{
		Base: health.NewBase(ProviderSlug, "config_permissions", health.CategorySecurity, "Configuration file permissions"),
		path: path,
	}
}

// Perform inspects the file mode.
func (c *ConfigPermissions) Perform(context.Context) (health.Result, error) {
	if c.path == "" {
		return c.Good("No configuration file is in use."), nil
	}

	info, err := os.Stat(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return c.Warning(fmt.Sprintf("The configuration file %s does not exist.", c.path)), nil
	}
	if err != nil {
		return health.Result{}, err
	}

	perm := info.Mode().Perm()
	switch {
	case perm&0o002 != 0:
		return c.Critical(fmt.Sprintf("The configuration file %s can be modified by every user (mode %#o).", c.path, perm)), nil
	case perm&0o004 != 0:
		return c.Warning(fmt.Sprintf("The configuration file %s can be read by every user (mode %#o).", c.path, perm)), nil
	}
	return c.Good("The configuration file is only accessible to its owner and group."), nil
}
