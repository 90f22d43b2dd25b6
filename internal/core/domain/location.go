package domain

type City struct {
	ID   int
	Name string
}

type Neighborhood struct {
	ID     int
	Name   string
	CityID int
}

type FinalCity struct {
	ID             int
	Name           string
	NeighborhoodID int
}
