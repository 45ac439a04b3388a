package dataset

// DefaultCampus. the school campus the app was first built for, with its hand measured walking graph.
func DefaultCampus() *Dataset {
	return &Dataset{
		Name: "campus",
		Locations: []Location{
			{Name: "Admin Department", Lat: 25.191468733915016, Lon: 55.253087282180786},
			{Name: "KG Play area", Lat: 25.19106006937515, Lon: 55.25286767631769},
			{Name: "Basketball Court A", Lat: 25.191590999282994, Lon: 55.25286465883255},
			{Name: "Football Field", Lat: 25.19242106563295, Lon: 55.253138579428196},
			{Name: "Basketball Court B", Lat: 25.192144074091672, Lon: 55.25290925055742},
			{Name: "Canteen", Lat: 25.19165167683939, Lon: 55.2522661909461},
			{Name: "Book Store", Lat: 25.192070047768066, Lon: 55.25247272104025},
			{Name: "Library", Lat: 25.19195688448967, Lon: 55.25269232690334},
			{Name: "Tennis Court", Lat: 25.191458115328896, Lon: 55.25226652622223},
			{Name: "Swimming Pool", Lat: 25.192204144599895, Lon: 55.25275904685259},
			{Name: "Auditorium", Lat: 25.191726310192312, Lon: 55.25262426584959},
		},
		Adjacency: map[string]map[string]float64{
			"Admin Department": {
				"KG Play area":       50.529032297952135,
				"Basketball Court A": 26.203050151953796,
				"Football Field":     106.02017012389383,
			},
			"KG Play area": {
				"Admin Department": 50.529032297952135,
				"Tennis Court":     74.95151523947659,
			},
			"Basketball Court A": {
				"Admin Department": 26.203050151953796,
				"Auditorium":       28.48585204588383,
			},
			"Football Field": {
				"Admin Department":   106.02017012389383,
				"Basketball Court B": 38.48489221475062,
				"Swimming Pool":      45.16772602358839,
			},
			"Basketball Court B": {
				"Football Field": 38.48489221475062,
				"Library":        30.160316360671107,
				"Swimming Pool":  16.523553609564864,
			},
			"Canteen": {
				"Book Store":   50.95116073683099,
				"Library":      54.682941601110215,
				"Tennis Court": 21.523084398669692,
				"Auditorium":   36.97256944708198,
			},
			"Book Store": {
				"Canteen":      50.95116073683099,
				"Library":      25.428145968573155,
				"Tennis Court": 71.13648183727625,
				"Auditorium":   41.15120118764267,
			},
			"Library": {
				"Basketball Court B": 30.160316360671107,
				"Canteen":            54.682941601110215,
				"Book Store":         25.428145968573155,
				"Tennis Court":       70.08178518071178,
				"Swimming Pool":      28.301801163107402,
				"Auditorium":         26.537535307816402,
			},
			"Tennis Court": {
				"KG Play area": 74.95151523947659,
				"Canteen":      21.523084398669692,
				"Book Store":   71.13648183727625,
				"Library":      70.08178518071178,
				"Auditorium":   46.744181258578436,
			},
			"Swimming Pool": {
				"Football Field":     45.16772602358839,
				"Basketball Court B": 16.523553609564864,
				"Library":            28.301801163107402,
			},
			"Auditorium": {
				"Basketball Court A": 28.48585204588383,
				"Canteen":            36.97256944708198,
				"Book Store":         41.15120118764267,
				"Library":            26.537535307816402,
				"Tennis Court":       46.744181258578436,
			},
		},
	}
}
