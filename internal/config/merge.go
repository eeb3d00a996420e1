package config

import "strings"

func MergeScan(base ScanSettings, layers ...ScanConfig) ScanSettings {
	out := base
	for _, layer := range layers {
		out.Tasks = ResolvePatterns(out.Tasks, layer.Tasks)
		out.FileTypes = ResolveStrings(out.FileTypes, layer.FileTypes)
		out.Recurse = ResolveBool(out.Recurse, layer.Recurse)
		out.Excludes = ResolveStrings(out.Excludes, layer.Excludes)
		out.Jobs = ResolveInt(out.Jobs, layer.Jobs)
	}
	return out
}

func MergeUI(base UISettings, layers ...UIConfig) UISettings {
	out := base
	for _, layer := range layers {
		out.Verbose = ResolveBool(out.Verbose, layer.Verbose)
		out.Quiet = ResolveBool(out.Quiet, layer.Quiet)
		out.Color = ResolveAndTrim(out.Color, layer.Color)
		out.Output = ResolveAndTrim(out.Output, layer.Output)
	}
	if strings.TrimSpace(out.Output) == "" {
		out.Output = "text"
	}
	if strings.TrimSpace(out.Color) == "" {
		out.Color = "auto"
	}
	return out
}

// Merge layers whole configs in order: later layers win.
func Merge(scan ScanSettings, ui UISettings, layers ...Config) (ScanSettings, UISettings) {
	scanLayers := make([]ScanConfig, 0, len(layers))
	uiLayers := make([]UIConfig, 0, len(layers))
	for _, l := range layers {
		scanLayers = append(scanLayers, l.Scan)
		uiLayers = append(uiLayers, l.UI)
	}
	return MergeScan(scan, scanLayers...), MergeUI(ui, uiLayers...)
}
