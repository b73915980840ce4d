// Package pytool locates Python interpreters, probes their versions, and
// derives paths inside a virtual environment (which differ between POSIX
// and Windows layouts).
package pytool
