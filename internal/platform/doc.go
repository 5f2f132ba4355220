// Package platform provides the cross-platform filesystem pieces the
// materializer needs: reproducing symlinks and setting permissions. On
// Windows without developer mode, symlinks fall back to a copy of the target
// plus a .target sidecar that records the original link target.
package platform
