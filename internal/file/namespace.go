package file

import "strings"

// separator joins a user namespace and a filename into an object key.
const separator = "/"

// IsBlank reports whether value is empty once surrounding whitespace is trimmed.
// It is the single validation predicate for user names, filenames and search fragments.
func IsBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}

// Prefix returns the key prefix that isolates userName's objects, "{user}/".
func Prefix(userName string) string {
	return userName + separator
}

// ObjectKey builds the "{user}/{filename}" key. The filename is used verbatim and
// may itself contain "/".
func ObjectKey(userName, fileName string) string {
	return Prefix(userName) + fileName
}

// FileName strips the user prefix from key. ok is false when key is outside the namespace.
func FileName(userName, key string) (name string, ok bool) {
	prefix := Prefix(userName)
	if !strings.HasPrefix(key, prefix) {
		return "", false
	}
	return strings.TrimPrefix(key, prefix), true
}

// validUserName rejects names that would nest inside another user's prefix.
func validUserName(userName string) bool {
	return !IsBlank(userName) && !strings.Contains(userName, separator)
}

// validFileName rejects blank names, absolute names and any ".." segment.
func validFileName(fileName string) bool {
	if IsBlank(fileName) || strings.HasPrefix(fileName, separator) {
		return false
	}
	for _, segment := range strings.Split(fileName, separator) {
		if segment == ".." {
			return false
		}
	}
	return true
}
