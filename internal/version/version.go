package version

import (
	"fmt"
	"strconv"
	"time"
)

// Version is the application version. Can be overridden at build time via:
//
//	go build -ldflags "-X winsbygroup.com/seedbac/internal/version.Version=1.2.3"
var Version = "1.0"

// Banner returns identifying information about the tool.
func Banner() string {
	y := strconv.Itoa(time.Now().Year())
	copyright := "Copyright 2025-" + y + " Winsby Group LLC. All rights reserved."

	return fmt.Sprintf("%s\nSeedbac (v%s)\n%s\n", product(), Version, copyright)
}

func product() string {
	// http://patorjk.com/software/taag/#p=display&f=Standard&t=Seedbac
	const s = `
  ____                _ _
 / ___|  ___  ___  __| | |__   __ _  ___
 \___ \ / _ \/ _ \/ _` + "`" + ` | '_ \ / _` + "`" + ` |/ __|
  ___) |  __/  __/ (_| | |_) | (_| | (__
 |____/ \___|\___|\__,_|_.__/ \__,_|\___|
`
	return s
}
