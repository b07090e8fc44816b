package osx

import (
	"github.com/beevik/etree"

	"github.com/arthur-debert/quark/pkg/backends"
	"github.com/arthur-debert/quark/pkg/settings"
)

const plistDoctype = `DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd"`

// InfoPlist builds the Info.plist document for s. iconFile is the name of
// the .icns inside Resources, or "" for none.
func InfoPlist(s *settings.Settings, iconFile string) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.CreateDirective(plistDoctype)
	plist := doc.CreateElement("plist")
	plist.CreateAttr("version", "1.0")
	dict := plist.CreateElement("dict")

	addString(dict, "CFBundleDevelopmentRegion", "English")
	addString(dict, "CFBundleDisplayName", s.BundleName())
	addString(dict, "CFBundleExecutable", s.BinaryName())
	if iconFile != "" {
		addString(dict, "CFBundleIconFile", iconFile)
	}
	addString(dict, "CFBundleIdentifier", s.BundleIdentifier())
	addString(dict, "CFBundleInfoDictionaryVersion", "6.0")
	addString(dict, "CFBundleName", s.BundleName())
	addString(dict, "CFBundlePackageType", "APPL")
	addString(dict, "CFBundleShortVersionString", s.VersionString())
	addString(dict, "CFBundleSignature", "????")
	addString(dict, "CFBundleVersion", s.VersionString())

	if schemes := s.OSXURLSchemes(); len(schemes) > 0 {
		key(dict, "CFBundleURLTypes")
		urlType := dict.CreateElement("array").CreateElement("dict")
		addString(urlType, "CFBundleURLName", s.BundleIdentifier())
		key(urlType, "CFBundleURLSchemes")
		list := urlType.CreateElement("array")
		for _, scheme := range schemes {
			list.CreateElement("string").SetText(scheme)
		}
	}

	if c, ok := s.AppCategory(); ok {
		addString(dict, "LSApplicationCategoryType", c.OSXApplicationCategoryType())
	}
	if v, ok := s.OSXMinimumSystemVersion(); ok {
		addString(dict, "LSMinimumSystemVersion", v)
	}
	key(dict, "LSRequiresCarbon")
	dict.CreateElement("true")
	key(dict, "NSHighResolutionCapable")
	dict.CreateElement("true")
	if c, ok := s.Copyright(); ok {
		addString(dict, "NSHumanReadableCopyright", c)
	}

	doc.Indent(2)
	return doc
}

func writeInfoPlist(s *settings.Settings, path, iconFile string) error {
	return backends.WriteDocument(s.FS(), path, InfoPlist(s, iconFile))
}

func key(dict *etree.Element, name string) {
	dict.CreateElement("key").SetText(name)
}

func addString(dict *etree.Element, name, value string) {
	key(dict, name)
	dict.CreateElement("string").SetText(value)
}
