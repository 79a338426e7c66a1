package command

// UnpackTarball extracts a (possibly compressed) tarball into dir.
// Compression is auto-detected by tar from the file name.
func UnpackTarball(tarball, dir string) Command {
	return New("tar", "-C", dir, "-xaf", tarball).
		WithRunError("couldn't unpack " + tarball)
}

// RemoveTree removes a whole directory tree.
func RemoveTree(dir string) Command {
	return New("rm", "-rf", dir).
		WithRunError("couldn't remove " + dir)
}

// DebChangelog runs the Debian changelog editor for a new version.
// The message argument is omitted entirely, not passed empty, when msg
// is "" so dch opens an editor instead of recording a blank entry.
func DebChangelog(version, msg string) Command {
	args := []string{"-v", version}
	if msg != "" {
		args = append(args, msg)
	}
	return New("dch", args...).
		WithRunError("couldn't update changelog for " + version)
}
