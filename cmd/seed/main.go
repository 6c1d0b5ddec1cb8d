package main

import (
	"log"
	"os"
	"time"

	"kb-assistant-be/internal/model"
	"kb-assistant-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeds the demo dataset used by the frontend prototype: two accounts, four
// knowledge bases and a worked chat session. Safe to re-run; existing rows
// are left alone.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding demo data...")

	liming := seedUsers(db)
	seedKnowledgeBases(db)
	seedChats(db, liming)

	color.Green("✅ Seed completed")
}

func mustHash(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Error: bcrypt failed: %v", err)
	}
	return string(hash)
}

func seedUsers(db *gorm.DB) uuid.UUID {
	users := []model.User{
		{Id: uuid.New(), Username: "admin", PasswordHash: mustHash("admin123"), Name: "管理员", Role: "admin", Avatar: "管理"},
		{Id: uuid.New(), Username: "李明", PasswordHash: mustHash("123456"), Name: "李明", Role: "user", Avatar: "李"},
	}

	var limingId uuid.UUID
	for i := range users {
		var existing model.User
		err := db.Where("username = ?", users[i].Username).First(&existing).Error
		if err == nil {
			color.Yellow("  user %s already exists, skipping", users[i].Username)
			if users[i].Username == "李明" {
				limingId = existing.Id
			}
			continue
		}
		if err := db.Create(&users[i]).Error; err != nil {
			log.Fatalf("Error: failed to create user %s: %v", users[i].Username, err)
		}
		color.Green("  + user %s", users[i].Username)
		if users[i].Username == "李明" {
			limingId = users[i].Id
		}
	}
	return limingId
}

func seedKnowledgeBases(db *gorm.DB) {
	var count int64
	db.Model(&model.KnowledgeBase{}).Count(&count)
	if count > 0 {
		color.Yellow("  knowledge bases already present, skipping")
		return
	}

	kbs := []model.KnowledgeBase{
		{Id: uuid.New(), Name: "公司政策", Description: "包含人力资源、报销流程等核心文档", Icon: "📄", Color: "from-blue-500 to-cyan-400", UpdatedLabel: "2小时前"},
		{Id: uuid.New(), Name: "产品常见问题", Description: "汇总用户最常问的产品操作问题", Icon: "❓", Color: "from-purple-500 to-pink-400", UpdatedLabel: "5小时前"},
		{Id: uuid.New(), Name: "员工手册", Description: "关于公司文化、价值观及日常行为准则", Icon: "📗", Color: "from-orange-500 to-yellow-400", UpdatedLabel: "1天前"},
		{Id: uuid.New(), Name: "售后流程", Description: "标准化的售后处理逻辑与退换货政策", Icon: "🔧", Color: "from-green-500 to-emerald-400", UpdatedLabel: "3天前"},
	}

	for i := range kbs {
		if err := db.Create(&kbs[i]).Error; err != nil {
			log.Fatalf("Error: failed to create knowledge base %s: %v", kbs[i].Name, err)
		}
		color.Green("  + knowledge base %s", kbs[i].Name)
	}

	documents := []model.Document{
		{Id: uuid.New(), KnowledgeBaseId: kbs[1].Id, Name: "2024产品更新路线图.pdf", Size: 2516582, Status: "synced", UploadedLabel: "10分钟前"},
		{Id: uuid.New(), KnowledgeBaseId: kbs[1].Id, Name: "常见登录问题解决指南.docx", Size: 862208, Status: "synced", UploadedLabel: "1小时前"},
		{Id: uuid.New(), KnowledgeBaseId: kbs[1].Id, Name: "API接口集成文档.txt", Size: 159744, Status: "synced", UploadedLabel: "昨天"},
	}
	for i := range documents {
		if err := db.Create(&documents[i]).Error; err != nil {
			log.Fatalf("Error: failed to create document %s: %v", documents[i].Name, err)
		}
		color.Green("  + document %s", documents[i].Name)
	}
}

func seedChats(db *gorm.DB, userId uuid.UUID) {
	if userId == uuid.Nil {
		color.Yellow("  demo user missing, skipping chats")
		return
	}

	var count int64
	db.Model(&model.ChatSession{}).Where("user_id = ?", userId).Count(&count)
	if count > 0 {
		color.Yellow("  chat sessions already present, skipping")
		return
	}

	now := time.Now()
	sessions := []model.ChatSession{
		{Id: uuid.New(), UserId: userId, Title: "关于公司带薪休假政策", CreatedAt: now},
		{Id: uuid.New(), UserId: userId, Title: "报销流程咨询", CreatedAt: now.Add(-2 * time.Hour)},
		{Id: uuid.New(), UserId: userId, Title: "IT设备申领指南", CreatedAt: now.Add(-24 * time.Hour)},
		{Id: uuid.New(), UserId: userId, Title: "如何使用公积金贷款", CreatedAt: now.Add(-72 * time.Hour)},
	}
	for i := range sessions {
		if err := db.Create(&sessions[i]).Error; err != nil {
			log.Fatalf("Error: failed to create chat session: %v", err)
		}
		color.Green("  + chat session %s", sessions[i].Title)
	}

	messages := []model.ChatMessage{
		{
			Id: uuid.New(), ChatSessionId: sessions[0].Id, Role: "assistant", CreatedLabel: "09:41",
			Content: "您好！我是您的智能助理。有什么我可以帮您的吗？您可以询问关于公司政策、报销、福利等方面的问题。",
		},
		{
			Id: uuid.New(), ChatSessionId: sessions[0].Id, Role: "user", CreatedLabel: "09:42",
			Content: "我想了解公司的休假政策，尤其是年假的规定。",
		},
		{
			Id: uuid.New(), ChatSessionId: sessions[0].Id, Role: "assistant", CreatedLabel: "09:42",
			Content: "根据公司的休假政策，正式员工享有的年假安排如下：\n\n• 入职满1年不满10年的员工，每年享有 **5天** 带薪年假。\n• 入职满10年不满20年的员工，每年享有 **10天** 带薪年假。\n• 入职满20年的员工，每年享有 **15天** 带薪年假。\n\n年假申请须提前5个工作日在OA系统提交，并经部门负责人批准。",
			SourceName: "公司员工手册 - 福利章节", SourceUpdatedAt: "2023年8月15日",
		},
	}
	for i := range messages {
		messages[i].CreatedAt = now.Add(time.Duration(i) * time.Second)
		if err := db.Create(&messages[i]).Error; err != nil {
			log.Fatalf("Error: failed to create chat message: %v", err)
		}
	}
	color.Green("  + %d chat messages", len(messages))
}
