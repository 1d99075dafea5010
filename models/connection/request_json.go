package connection

type ReqSetupPlayer struct {
	Name      string `json:"name"`
	Placement string `json:"placement"`
}

type ReqFire struct {
	Row int `json:"row"`
	Col int `json:"col"`
}
