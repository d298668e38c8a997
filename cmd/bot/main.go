package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"

	"groupmixer/internal/bot"
	"groupmixer/internal/config"
	"groupmixer/internal/db"
	"groupmixer/internal/scheduler"
	"groupmixer/internal/version"
)

func main() {
	_ = godotenv.Load()
	testMode := flag.Bool("test", false, "test mode: invite immediately, one-minute signup window")
	tokenFlag := flag.String("token", "", "bot token (overrides TELEGRAM_BOT_TOKEN)")
	onceInvite := flag.Bool("once-invite", false, "send invites once now and exit")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()
	if *showVersion {
		log.Println("groupmixer bot version", version.Version)
		return
	}
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal(err)
	}
	if *tokenFlag != "" {
		cfg.Token = *tokenFlag
	}
	cfg.Token = strings.TrimSpace(cfg.Token)
	if cfg.Token == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN is not set")
	}
	log.Printf("startup: version=%s pid=%d", version.Version, os.Getpid())
	st, err := db.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatal(err)
	}
	defer st.Close()
	if err := st.EnsureSettings(cfg.DailyTime); err != nil {
		log.Fatal(err)
	}
	var jm string
	_ = st.DB.Get(&jm, "PRAGMA journal_mode;")
	daily, _ := st.GetDailyTime()
	var chatCount int
	_ = st.DB.Get(&chatCount, "SELECT COUNT(1) FROM chats")
	log.Printf("startup: db_journal=%s daily_time=%s chats=%d", jm, daily, chatCount)

	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		log.Fatal(err)
	}
	api.Debug = false

	b := bot.New(api, st)
	b.TestMode = *testMode
	b.SignupWindow = cfg.SignupWindow
	if *testMode {
		b.SignupWindow = time.Minute
	}
	if *onceInvite {
		log.Println("manual once-invite trigger start")
		b.SendDailyInvites()
		log.Println("manual once-invite trigger done; exiting")
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	sch := scheduler.New(st)
	sch.OnDailyInvite = func() { b.SendDailyInvites() }
	sch.OnCloseSessions = func(ids []int64) {
		for _, id := range ids {
			b.CloseAndPublish(id)
		}
	}
	if *testMode {
		sch.DisableDaily = true
		sch.CloseInterval = 5 * time.Second
		b.SendDailyInvites()
	}
	sch.Start(ctx)

	b.Start(ctx)
}
