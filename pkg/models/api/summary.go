package api

type BoothCount struct {
	Booth string `json:"booth"`
	Count int    `json:"count"`
}

type TimeBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
	Dates int    `json:"dates"`
}

type DefectAreaRow struct {
	ID       string `json:"id"`
	Area     string `json:"area"`
	Count    int    `json:"count"`
	FullPath string `json:"fullPath"`
	Depth    int    `json:"depth"`
}

type DefectAreaView struct {
	Key         string `json:"key"`
	DisplayName string `json:"displayName"`
	Count       int    `json:"count"`
	Descendants int    `json:"descendants"`
	Details     string `json:"details"`
}
