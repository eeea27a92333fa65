package display

func init() {
	Register(&tier{code: "8k", width: 7680, height: 4320})
	Register(&tier{code: "4k", width: 3840, height: 2160})
	Register(&tier{code: "2k", width: 1920, height: 1080})

	// hd walls only take a single panel from the top-left corner
	Register(&tier{code: "hd", width: 1280, height: 720, fallback: true})
}
