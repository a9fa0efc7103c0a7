// Command tokengen mints an access token for a user id and role, signed
// with the server's secret. It is meant for bootstrapping the first admin.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dmitrijs2005/evote/internal/common"
	"github.com/dmitrijs2005/evote/internal/server/auth"
)

func main() {
	userID := flag.String("uid", "admin", "user id to put into the token")
	role := flag.String("role", common.RoleAdmin, "role: admin or voter")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	secret := flag.String("s", os.Getenv("EVOTE_SECRET_KEY"), "JWT signing secret (default $EVOTE_SECRET_KEY)")
	flag.Parse()

	if *secret == "" {
		log.Fatal("secret is required: pass -s or set EVOTE_SECRET_KEY")
	}
	if *role != common.RoleAdmin && *role != common.RoleVoter {
		log.Fatalf("unknown role %q", *role)
	}

	token, err := auth.GenerateToken(*userID, *role, []byte(*secret), *ttl)
	if err != nil {
		log.Fatalf("token generation failed: %v", err)
	}
	fmt.Println(token)
}
