package screenshare

import (
	"github.com/pion/screenshare/pkg/driver"
)

// RegisterDriverAdapter allows user space level of driver registration on
// the default manager.
func RegisterDriverAdapter(a driver.Adapter, info driver.Info) error {
	return driver.GetManager().Register(a, info)
}
