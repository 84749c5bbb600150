package offlinegate

func pickStrings(cli, file, def []string) []string {
	if len(cli) > 0 {
		return cli
	}
	if len(file) > 0 {
		return file
	}
	return def
}

func pickInt64(cli int64, file *int64) int64 {
	if cli != 0 {
		return cli
	}
	if file != nil {
		return *file
	}
	return 0
}

func pickBool(cli bool, file *bool) bool {
	if cli {
		return true
	}
	if file != nil {
		return *file
	}
	return false
}
