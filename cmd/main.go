package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/saeidalz13/battleship-hotseat/api"
	"github.com/saeidalz13/battleship-hotseat/db"
	"github.com/saeidalz13/battleship-hotseat/db/sqlc"
	mb "github.com/saeidalz13/battleship-hotseat/models/battleship"
	mc "github.com/saeidalz13/battleship-hotseat/models/connection"
)

func main() {
	if os.Getenv("STAGE") != api.StageProd {
		if err := godotenv.Load(".env"); err != nil {
			panic(err)
		}
	}
	stage := os.Getenv("STAGE")
	if stage != api.StageDev && stage != api.StageProd {
		panic("stage must be either dev or prod")
	}
	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		panic(err)
	}

	opts := []api.Option{
		api.WithStage(stage, strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",")...),
	}

	// Analytics are optional
	if psqlUrl := os.Getenv("DATABASE_URL"); psqlUrl != "" {
		database := db.MustConnectToDb(psqlUrl, db.DefaultMigrationDir)
		defer database.Close()
		opts = append(opts, api.WithDbManager(sqlc.NewDbManager(database)))
	} else {
		log.Println("DATABASE_URL not set, analytics disabled")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sessionManager := mc.NewBattleshipSessionManager()
	go sessionManager.CleanupPeriodically(ctx)

	gameManager := mb.NewBattleshipGameManager()
	rp := api.NewRequestProcessor(sessionManager, gameManager, opts...)

	log.Printf("Listening to port %d\n", port)
	log.Fatalln(http.ListenAndServe(fmt.Sprintf("0.0.0.0:%d", port), api.NewRouter(rp)))
}
