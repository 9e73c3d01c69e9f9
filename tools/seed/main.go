package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"locallens-server/config"
	"locallens-server/internal/model"
	"locallens-server/internal/repository"
	dbPkg "locallens-server/pkg/db"
	"locallens-server/pkg/password"
)

// 开发用数据填充工具：
//   go run tools/seed/main.go -users 20 -events 10
// 所有用户密码均为 password123

var (
	userCount  = flag.Int("users", 20, "number of users to create")
	eventCount = flag.Int("events", 10, "number of events to create")
)

var categories = []string{"Food", "Music", "Sports", "Art", "Tech", "Outdoors"}

var locations = []string{
	"Mission District", "Hayes Valley", "North Beach",
	"Dolores Park", "Golden Gate Park", "SoMa",
}

func main() {
	flag.Parse()

	cfg := config.LoadConfig()
	if _, err := dbPkg.InitDB(cfg.Database); err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer dbPkg.CloseDB()

	db := dbPkg.GetDB()
	if err := dbPkg.AutoMigrate(
		&model.User{},
		&model.FriendRequest{},
		&model.Friendship{},
		&model.FriendGroup{},
		&model.FriendGroupMember{},
		&model.Event{},
		&model.Category{},
		&model.EventCategory{},
		&model.EventInvitation{},
		&model.EventAttendance{},
		&model.Place{},
		&model.Review{},
	); err != nil {
		log.Fatalf("auto migrate failed: %v", err)
	}

	hash, err := password.Hash("password123")
	if err != nil {
		log.Fatalf("hash password failed: %v", err)
	}

	// 1. 用户
	userRepo := repository.NewUserRepository(db)
	users := make([]*model.User, 0, *userCount)
	for i := 1; i <= *userCount; i++ {
		u := &model.User{
			Name:          fmt.Sprintf("Test User %d", i),
			Username:      fmt.Sprintf("user%d", i),
			Email:         fmt.Sprintf("user%d@example.com", i),
			PasswordHash:  hash,
			LocationLabel: locations[rand.Intn(len(locations))],
		}
		if err := userRepo.Create(u); err != nil {
			log.Printf("skip user %s: %v", u.Username, err)
			continue
		}
		users = append(users, u)
	}
	fmt.Printf("created %d users\n", len(users))

	if len(users) < 2 {
		log.Fatal("need at least 2 users to seed the friend graph")
	}

	// 2. 好友关系（每个用户与后面的2~4个用户互为好友）
	friendRepo := repository.NewFriendRepository(db)
	friendPairs := 0
	for i, u := range users {
		n := 2 + rand.Intn(3)
		for j := i + 1; j <= i+n && j < len(users); j++ {
			pairMin, pairMax := model.NormalizePair(u.ID, users[j].ID)
			active := uint8(1)
			req := &model.FriendRequest{
				FromUserID: u.ID,
				ToUserID:   users[j].ID,
				Status:     model.FriendRequestPending,
				PairMinID:  pairMin,
				PairMaxID:  pairMax,
				Active:     &active,
			}
			if err := friendRepo.CreateRequest(req); err != nil {
				continue
			}
			if err := friendRepo.AcceptRequest(req); err != nil {
				continue
			}
			friendPairs++
		}
	}
	fmt.Printf("created %d friendships\n", friendPairs)

	// 3. 活动 + 邀请 + 报名
	eventRepo := repository.NewEventRepository(db)
	invitationRepo := repository.NewInvitationRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	statuses := []string{model.AttendanceGoing, model.AttendanceMaybe, model.AttendanceDeclined}

	for i := 1; i <= *eventCount; i++ {
		creator := users[rand.Intn(len(users))]
		catIDs, err := eventRepo.EnsureCategories([]string{categories[rand.Intn(len(categories))]})
		if err != nil {
			log.Printf("skip event %d: %v", i, err)
			continue
		}
		e := &model.Event{
			Title:         fmt.Sprintf("Seeded Event %d", i),
			Description:   "Generated by tools/seed",
			CreatorID:     creator.ID,
			LocationLabel: locations[rand.Intn(len(locations))],
			StartsAt:      time.Now().Add(time.Duration(1+rand.Intn(14*24)) * time.Hour),
			Capacity:      10 + rand.Intn(40),
			IsPrivate:     rand.Intn(4) == 0,
		}
		if err := eventRepo.Create(e, catIDs); err != nil {
			log.Printf("skip event %d: %v", i, err)
			continue
		}

		// 邀请创建者的部分好友并随机报名
		friendIDs, err := friendRepo.ListFriendIDs(creator.ID)
		if err != nil {
			continue
		}
		for _, fid := range friendIDs {
			if rand.Intn(2) == 0 {
				continue
			}
			inv := &model.EventInvitation{
				EventID:       e.ID,
				InvitedUserID: fid,
				InviterID:     creator.ID,
			}
			if err := invitationRepo.Create(inv); err != nil {
				continue
			}
			if rand.Intn(3) > 0 {
				_ = attendanceRepo.Upsert(&model.EventAttendance{
					EventID: e.ID,
					UserID:  fid,
					Status:  statuses[rand.Intn(len(statuses))],
				})
			}
		}
		_ = attendanceRepo.Upsert(&model.EventAttendance{
			EventID: e.ID,
			UserID:  creator.ID,
			Status:  model.AttendanceGoing,
		})
	}
	fmt.Printf("created %d events\n", *eventCount)

	fmt.Println("seed completed")
}
