package main

import (
	"flag"
	"log"

	"carbon-register/pkg/config"
	"carbon-register/pkg/database/postgresql"
	"carbon-register/seeders"
)

func main() {
	runMaster := flag.Bool("master", false, "seed locations, departments and emission factors")
	runAdmin := flag.Bool("admin", false, "seed the initial admin user")
	runAll := flag.Bool("all", false, "run every seeder")
	flag.Parse()

	if !*runMaster && !*runAdmin && !*runAll {
		log.Println("no seeder selected")
		flag.PrintDefaults()
		return
	}

	cfg := config.New()
	dbPool := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbPool.Close()

	if *runAll || *runMaster {
		seeders.SeedMasterData(dbPool)
	}
	if *runAll || *runAdmin {
		seeders.SeedAdminUser(dbPool)
	}
}
