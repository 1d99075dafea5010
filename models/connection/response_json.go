package connection

type RespSessionId struct {
	SessionID string `json:"session_id"`
}

type RespCreateGame struct {
	GameUuid string `json:"game_uuid"`
	State    string `json:"state"`
}

type RespSetupPlayer struct {
	PlayerSlot       uint8  `json:"player_slot"`
	State            string `json:"state"`
	NameInvalid      bool   `json:"name_invalid"`
	PlacementInvalid bool   `json:"placement_invalid"`
}

type RespTurn struct {
	State        string `json:"state"`
	ActivePlayer string `json:"active_player"`
	OpponentName string `json:"opponent_name"`
}

type RespFire struct {
	Row                 int    `json:"row"`
	Col                 int    `json:"col"`
	Outcome             uint8  `json:"outcome"`
	OutcomeName         string `json:"outcome_name"`
	Text                string `json:"text"`
	AwaitingAcknowledge bool   `json:"awaiting_acknowledge"`
}

type RespBoards struct {
	ActivePlayer string     `json:"active_player"`
	Friendly     [][]string `json:"friendly"`
	Enemy        [][]string `json:"enemy"`
}

type RespEndGame struct {
	WinnerName  string `json:"winner_name"`
	WinnerScore int    `json:"winner_score"`
	LoserName   string `json:"loser_name"`
	LoserScore  int    `json:"loser_score"`
}

type RespErr struct {
	ErrorDetails string `json:"error_details,omitempty"`
	Message      string `json:"message,omitempty"`
}

func NewRespErr(errorDetails, message string) *RespErr {
	return &RespErr{
		ErrorDetails: errorDetails,
		Message:      message,
	}
}
