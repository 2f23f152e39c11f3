package main

import (
	"errors"

	"github.com/campus-mall/internal/app"
	"github.com/campus-mall/internal/config"
	"github.com/campus-mall/internal/logger"
	"github.com/campus-mall/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedProduct struct {
	Name        string
	Tag         string
	Price       string
	Discount    string
	IsFlashSale bool
	Stock       int
	Description string
}

var seedTags = []string{"数码", "图书", "生活用品", "运动"}

var seedProducts = []seedProduct{
	{Name: "二手机械键盘", Tag: "数码", Price: "199", Discount: "8", IsFlashSale: true, Stock: 3, Description: "青轴，宿舍自用一学期，九成新"},
	{Name: "蓝牙耳机", Tag: "数码", Price: "129", Discount: "10", Stock: 10, Description: "续航 20 小时，附充电盒"},
	{Name: "高等数学（第七版）上册", Tag: "图书", Price: "35", Discount: "5", IsFlashSale: true, Stock: 6, Description: "有少量笔记，适合期末复习"},
	{Name: "大学英语四级真题", Tag: "图书", Price: "28", Discount: "10", Stock: 12, Description: "近十年真题与解析"},
	{Name: "宿舍床上折叠桌", Tag: "生活用品", Price: "45", Discount: "9", Stock: 20, Description: "可折叠，承重 30kg"},
	{Name: "台灯", Tag: "生活用品", Price: "59", Discount: "10", Stock: 8, Description: "三档调光，USB 供电"},
	{Name: "羽毛球拍", Tag: "运动", Price: "88", Discount: "7.5", IsFlashSale: true, Stock: 4, Description: "全碳素，送两只球"},
	{Name: "瑜伽垫", Tag: "运动", Price: "39", Discount: "10", Stock: 15, Description: "加厚 10mm，防滑"},
}

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	infra, err := app.OpenInfra(cfg)
	if err != nil {
		stdLog.Fatalf("初始化数据库失败: %v", err)
	}
	defer infra.Close()
	db := infra.DB

	tagIDs := make(map[string]uint, len(seedTags))
	for _, name := range seedTags {
		tag := models.Tag{Name: name}
		if err := db.Where(models.Tag{Name: name}).FirstOrCreate(&tag).Error; err != nil {
			stdLog.Fatalf("创建分类 %s 失败: %v", name, err)
		}
		tagIDs[name] = tag.ID
	}

	for _, item := range seedProducts {
		var existing models.Product
		err := db.Where("name = ?", item.Name).First(&existing).Error
		if err == nil {
			logger.Infow("seed_product_exists", "name", item.Name)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			stdLog.Fatalf("查询商品 %s 失败: %v", item.Name, err)
		}
		product := models.Product{
			Name:        item.Name,
			Price:       models.MustMoney(item.Price),
			Discount:    models.MustMoney(item.Discount),
			IsFlashSale: item.IsFlashSale,
			Stock:       item.Stock,
			Description: item.Description,
			TagID:       tagIDs[item.Tag],
		}
		if err := db.Create(&product).Error; err != nil {
			stdLog.Fatalf("创建商品 %s 失败: %v", item.Name, err)
		}
		logger.Infow("seed_product_created", "id", product.ID, "name", product.Name)
	}

	if err := seedDemoUser(db); err != nil {
		stdLog.Fatalf("创建演示用户失败: %v", err)
	}
	logger.Infow("seed_done", "tags", len(seedTags), "products", len(seedProducts))
}

func seedDemoUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Where("name = ?", "demo").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("demo123456"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user := models.User{
		Name:         "demo",
		PasswordHash: string(hash),
		Email:        "demo@campus.edu",
		Phone:        "13800000000",
		Location:     "东区 3 号楼 402",
	}
	if err := db.Create(&user).Error; err != nil {
		return err
	}
	logger.Infow("seed_demo_user_created", "name", user.Name, "password", "demo123456")
	return nil
}
