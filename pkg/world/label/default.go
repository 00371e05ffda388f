package label

// Default is the label table used by the pipelines.
var Default = defaultRegistry().MustBuild()

func defaultRegistry() *Registry {
	r := &Registry{}
	mountain := WithFlags(FlagMountains)
	r.Biome(Ocean, "ocean", WithFlags(FlagOcean)).
		Biome(OceanReef, "ocean_reef", WithFlags(FlagOcean)).
		Biome(DeepOcean, "deep_ocean", WithFlags(FlagOcean)).
		Biome(DeepOceanTrench, "deep_ocean_trench", WithFlags(FlagOcean)).
		Biome(Plains, "plains", WithFlags(FlagLow)).
		Biome(Hills, "hills", WithFlags(FlagLow)).
		Biome(Lowlands, "lowlands", WithFlags(FlagLow|FlagNoShore)).
		Biome(LowCanyons, "low_canyons", WithFlags(FlagLow|FlagNoShore)).
		Biome(RollingHills, "rolling_hills").
		Biome(Badlands, "badlands", WithFlags(FlagHigh|FlagNoLake)).
		Biome(InvertedBadlands, "inverted_badlands", WithFlags(FlagHigh)).
		Biome(Plateau, "plateau", WithFlags(FlagHigh), WithLake(PlateauLake)).
		Biome(OldMountains, "old_mountains", mountain, WithLake(OldMountainLake), WithRiver(OldMountainRiver)).
		Biome(Mountains, "mountains", mountain, WithLake(MountainLake), WithRiver(MountainRiver),
			WithShore(OceanicMountains)).
		Biome(VolcanicMountains, "volcanic_mountains", mountain,
			WithLake(VolcanicMountainLake), WithRiver(VolcanicMountainRiver), WithShore(VolcanicOceanicMountains)).
		Biome(OceanicMountains, "oceanic_mountains", mountain, WithFlags(FlagNoShore),
			WithLake(OceanicMountainLake), WithRiver(OceanicMountainRiver)).
		Biome(VolcanicOceanicMountains, "volcanic_oceanic_mountains", mountain, WithFlags(FlagNoShore),
			WithLake(VolcanicOceanicMountainLake), WithRiver(VolcanicOceanicMountainRiver)).
		Biome(Canyons, "canyons", WithFlags(FlagNoShore)).
		Biome(Shore, "shore").
		Biome(Lake, "lake", WithFlags(FlagLake|FlagNoShore)).
		Biome(River, "river", WithFlags(FlagRiver|FlagNoShore)).
		Biome(MountainRiver, "mountain_river", WithFlags(FlagRiver|FlagNoShore)).
		Biome(VolcanicMountainRiver, "volcanic_mountain_river", WithFlags(FlagRiver|FlagNoShore)).
		Biome(OldMountainRiver, "old_mountain_river", WithFlags(FlagRiver|FlagNoShore)).
		Biome(OceanicMountainRiver, "oceanic_mountain_river", WithFlags(FlagRiver|FlagNoShore)).
		Biome(VolcanicOceanicMountainRiver, "volcanic_oceanic_mountain_river", WithFlags(FlagRiver|FlagNoShore)).
		Biome(MountainLake, "mountain_lake", WithFlags(FlagLake|FlagNoShore)).
		Biome(VolcanicMountainLake, "volcanic_mountain_lake", WithFlags(FlagLake|FlagNoShore)).
		Biome(OldMountainLake, "old_mountain_lake", WithFlags(FlagLake|FlagNoShore)).
		Biome(OceanicMountainLake, "oceanic_mountain_lake", WithFlags(FlagLake|FlagNoShore)).
		Biome(VolcanicOceanicMountainLake, "volcanic_oceanic_mountain_lake", WithFlags(FlagLake|FlagNoShore)).
		Biome(PlateauLake, "plateau_lake", WithFlags(FlagLake|FlagNoShore)).
		Marker(OceanOceanConvergingMarker, "ocean_ocean_converging_marker", DeepOcean, WithFlags(FlagOcean)).
		Marker(OceanOceanDivergingMarker, "ocean_ocean_diverging_marker", DeepOcean, WithFlags(FlagOcean)).
		Marker(LakeMarker, "lake_marker", Lake).
		Marker(NullMarker, "null_marker", Ocean).
		Marker(InlandMarker, "inland_marker", Plains).
		Marker(OceanReefMarker, "ocean_reef_marker", Ocean, WithFlags(FlagOcean))
	return r
}

// IsOcean reports whether l is a terminal ocean label.
func IsOcean(l Biome) bool {
	return Default.Has(l, FlagOcean) && !Default.IsMarker(l)
}

// IsOceanOrMarker reports whether l is an ocean label or an ocean marker.
func IsOceanOrMarker(l Biome) bool { return Default.Has(l, FlagOcean) }

// IsLand reports whether l is neither an ocean label nor an ocean marker.
func IsLand(l Biome) bool { return !IsOceanOrMarker(l) }

// IsLow reports whether l is a low-lying land label.
func IsLow(l Biome) bool { return Default.Has(l, FlagLow) }

// IsHigh reports whether l is an elevated non-mountain label.
func IsHigh(l Biome) bool { return Default.Has(l, FlagHigh) }

// IsMountains reports whether l is a mountain label.
func IsMountains(l Biome) bool { return Default.Has(l, FlagMountains) }

// IsLake reports whether l is a lake label.
func IsLake(l Biome) bool { return Default.Has(l, FlagLake) }

// IsRiver reports whether l is a river label.
func IsRiver(l Biome) bool { return Default.Has(l, FlagRiver) }

// HasShore reports whether l forms a shore where it meets the ocean.
func HasShore(l Biome) bool { return !Default.Has(l, FlagNoShore) }

// HasLake reports whether a lake may be placed inside l.
func HasLake(l Biome) bool {
	return !IsOceanOrMarker(l) && !Default.Has(l, FlagNoLake) && !IsLake(l) && !IsRiver(l)
}

// HasRiver reports whether a river may cut through l.
func HasRiver(l Biome) bool {
	return !IsOceanOrMarker(l) && !IsLake(l) && !IsRiver(l)
}

// LakeFor returns the lake variant of l.
func LakeFor(l Biome) Biome {
	e, _ := Default.Lookup(l)
	return e.Lake
}

// RiverFor returns the river variant of l.
func RiverFor(l Biome) Biome {
	e, _ := Default.Lookup(l)
	return e.River
}

// ShoreFor returns the label l becomes where it meets the ocean.
func ShoreFor(l Biome) Biome {
	e, _ := Default.Lookup(l)
	return e.Shore
}
