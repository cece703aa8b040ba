// Package filesystem provides driven adapters backed by the host
// filesystem.
//
//   - Prober: driven.FileProber via os.Stat
//   - SDKLocator: driven.SDKLocator scanning JDK installations
//
// # SDK Discovery
//
// A JDK home is recognised by its "release" file, whose JAVA_VERSION
// entry gives the SDK version. SDKs are named by major version ("17",
// "8"), which is the name sdk edges carry.
package filesystem
