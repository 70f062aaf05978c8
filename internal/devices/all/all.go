// Package all registers every built-in driver backend with the device
// registry. Import it for side effects, like image format packages:
//
//	import _ "github.com/leecorbin/MatrixOS/internal/devices/all"
package all

import (
	_ "github.com/leecorbin/MatrixOS/internal/devices/buttons"
	_ "github.com/leecorbin/MatrixOS/internal/devices/hub75"
	_ "github.com/leecorbin/MatrixOS/internal/devices/term"
	_ "github.com/leecorbin/MatrixOS/internal/devices/window"
)
