// merge.go
// Config merging logic for msgformat
package internal

// mergeConfigs merges a slice of Configs, from least to most specific.
func mergeConfigs(configs []*Config) *Config {
	if len(configs) == 0 {
		return &Config{}
	}
	merged := configs[0]
	for i := 1; i < len(configs); i++ {
		mergeConfigsPair(merged, configs[i])
	}
	merged.Calls = dedupeLast(merged.Calls, func(c Call) string { return c.Name })
	merged.Messages = dedupeLast(merged.Messages, func(m Message) string { return m.ID })
	return merged
}

// dedupeLast collapses entries sharing a key, so that a block repeated
// within one file behaves like one overridden by a later file: the last
// declaration wins and keeps the slot of the first.
func dedupeLast[T any](items []T, key func(T) string) []T {
	slot := make(map[string]int, len(items))
	out := items[:0:0]
	for _, it := range items {
		k := key(it)
		if i, ok := slot[k]; ok {
			Debugf("duplicate declaration %q, the later one wins", k)
			out[i] = it
			continue
		}
		slot[k] = len(out)
		out = append(out, it)
	}
	return out
}

// mergeConfigsPair merges two Config objects: add takes precedence over base.
//
// 1. Settings fields are overwritten by add if set.
// 2. Calls are merged by name.
// 3. Messages are merged by id.
func mergeConfigsPair(base *Config, add *Config) {
	if add.Settings != nil {
		if base.Settings == nil {
			base.Settings = &Settings{}
		}
		mergeSettings(base.Settings, add.Settings)
	}

	// Merge calls: replace by name
	callMap := map[string]int{} // Map name to index in base.Calls
	for i, c := range base.Calls {
		callMap[c.Name] = i
	}
	for _, c := range add.Calls {
		if i, ok := callMap[c.Name]; ok {
			base.Calls[i] = c
		} else {
			base.Calls = append(base.Calls, c)
			callMap[c.Name] = len(base.Calls) - 1
		}
	}

	// Merge messages: replace by id
	msgMap := map[string]int{} // Map id to index in base.Messages
	for i, m := range base.Messages {
		msgMap[m.ID] = i
	}
	for _, m := range add.Messages {
		if i, ok := msgMap[m.ID]; ok {
			base.Messages[i] = m
		} else {
			base.Messages = append(base.Messages, m)
			msgMap[m.ID] = len(base.Messages) - 1
		}
	}
}

func mergeSettings(base, add *Settings) {
	if add.Debug {
		base.Debug = true
	}
	if add.MismatchSeverity != nil {
		base.MismatchSeverity = add.MismatchSeverity
	}
	if add.StructuralSeverity != nil {
		base.StructuralSeverity = add.StructuralSeverity
	}
	if add.Text != nil {
		base.Text = add.Text
	}
	if add.LogLevel != nil {
		base.LogLevel = add.LogLevel
	}
}
