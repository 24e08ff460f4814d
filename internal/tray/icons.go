package tray

import _ "embed"

var (
	//go:embed icons/disconnected.png
	IconDisconnected []byte

	//go:embed icons/connected.png
	IconConnected []byte

	//go:embed icons/active.png
	IconActive []byte
)
