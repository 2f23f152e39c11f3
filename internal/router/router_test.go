package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/campus-mall/internal/cache"
	"github.com/campus-mall/internal/config"
	"github.com/campus-mall/internal/metrics"
	"github.com/campus-mall/internal/models"
	"github.com/campus-mall/internal/provider"
	"github.com/campus-mall/internal/queue"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

type envelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

type routerFixture struct {
	db        *gorm.DB
	container *provider.Container
	engine    *gin.Engine
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	v := viper.New()
	config.SetDefaults(v)
	cfg, err := config.Unmarshal(v)
	if err != nil {
		t.Fatalf("load default config failed: %v", err)
	}
	cfg.Upload.Dir = t.TempDir()

	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		t.Fatalf("new queue client failed: %v", err)
	}
	container, err := provider.NewContainer(cfg, db, cache.NewStore(&cfg.Redis), queueClient, metrics.New())
	if err != nil {
		t.Fatalf("new container failed: %v", err)
	}
	return &routerFixture{db: db, container: container, engine: SetupRouter(cfg, container)}
}

func (f *routerFixture) do(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	var env envelope
	if w.Code == http.StatusOK {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			t.Fatalf("unmarshal envelope failed: %v body=%s", err, w.Body.String())
		}
	}
	return w, env
}

func formRequest(method, target string, values url.Values, token string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func jsonRequest(method, target, body, token string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func (f *routerFixture) registerAndLogin(t *testing.T, name, phone string) string {
	t.Helper()
	_, env := f.do(t, formRequest(http.MethodPost, "/register/", url.Values{
		"name":       {name},
		"email":      {name + "@campus.edu"},
		"phone":      {phone},
		"password":   {"secret123"},
		"repassword": {"secret123"},
	}, ""))
	if env.StatusCode != 0 {
		t.Fatalf("register want 0 got %d msg=%s", env.StatusCode, env.Msg)
	}

	_, env = f.do(t, formRequest(http.MethodPost, "/login/", url.Values{
		"name":     {name},
		"password": {"secret123"},
	}, ""))
	if env.StatusCode != 0 {
		t.Fatalf("login want 0 got %d msg=%s", env.StatusCode, env.Msg)
	}
	var data struct {
		Token    string `json:"token"`
		Redirect string `json:"redirect"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("unmarshal login data failed: %v", err)
	}
	if data.Token == "" {
		t.Fatalf("login should return token")
	}
	if data.Redirect != "/user/" {
		t.Fatalf("redirect want /user/ got %s", data.Redirect)
	}
	return data.Token
}

func (f *routerFixture) createProduct(t *testing.T, name, price string) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:     name,
		Price:    models.MustMoney(price),
		Discount: models.MustMoney("10"),
		Stock:    50,
	}
	if err := f.db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestStorefrontCheckoutFlow(t *testing.T) {
	f := newRouterFixture(t)
	token := f.registerAndLogin(t, "alice", "13800138000")
	product := f.createProduct(t, "notebook", "12.50")

	payload := fmt.Sprintf(`{"itemId":%d,"itemQty":2}`, product.ID)
	for i := 0; i < 2; i++ {
		_, env := f.do(t, formRequest(http.MethodPost, "/cart/", url.Values{"data": {payload}}, token))
		if env.StatusCode != 0 {
			t.Fatalf("add to cart #%d want 0 got %d msg=%s", i+1, env.StatusCode, env.Msg)
		}
	}

	_, env := f.do(t, formRequest(http.MethodGet, "/cart/", nil, token))
	var cart struct {
		Items    []cartItemView `json:"items"`
		Subtotal string         `json:"subtotal"`
	}
	if err := json.Unmarshal(env.Data, &cart); err != nil {
		t.Fatalf("unmarshal cart failed: %v", err)
	}
	if len(cart.Items) != 2 || cart.Subtotal != "50.00" {
		t.Fatalf("cart want 2 rows and 50.00, got %d rows %s", len(cart.Items), cart.Subtotal)
	}

	_, env = f.do(t, formRequest(http.MethodPost, "/order/", nil, token))
	if env.StatusCode != 0 {
		t.Fatalf("checkout want 0 got %d msg=%s", env.StatusCode, env.Msg)
	}
	var checkout struct {
		Order struct {
			Subtotal string `json:"subtotal"`
			Status   int    `json:"status"`
			Items    []struct {
				Quantity int `json:"quantity"`
			} `json:"items"`
		} `json:"order"`
	}
	if err := json.Unmarshal(env.Data, &checkout); err != nil {
		t.Fatalf("unmarshal order failed: %v", err)
	}
	if checkout.Order.Subtotal != "50.00" || len(checkout.Order.Items) != 2 || checkout.Order.Status != 0 {
		t.Fatalf("unexpected order: %+v", checkout.Order)
	}

	var remaining int64
	if err := f.db.Model(&models.CartInfo{}).Count(&remaining).Error; err != nil {
		t.Fatalf("count cart rows failed: %v", err)
	}
	if remaining != 0 {
		t.Fatalf("cart should be empty after checkout, got %d rows", remaining)
	}
}

type cartItemView struct {
	ItemID  uint   `json:"itemId"`
	ItemQty int    `json:"itemQty"`
	Total   string `json:"itemTotal"`
}

func TestCartPostWithoutSessionOnlyFlashes(t *testing.T) {
	f := newRouterFixture(t)
	product := f.createProduct(t, "pen", "3")

	payload := fmt.Sprintf(`{"itemId":%d,"itemQty":1}`, product.ID)
	_, env := f.do(t, formRequest(http.MethodPost, "/cart/", url.Values{"data": {payload}}, ""))
	if env.StatusCode != 401 {
		t.Fatalf("status_code want 401 got %d", env.StatusCode)
	}
	if !strings.Contains(string(env.Data), "flash") {
		t.Fatalf("expected flash message, got %s", string(env.Data))
	}

	var carts, rows int64
	f.db.Model(&models.Cart{}).Count(&carts)
	f.db.Model(&models.CartInfo{}).Count(&rows)
	if carts != 0 || rows != 0 {
		t.Fatalf("guest cart post must not write, got carts=%d rows=%d", carts, rows)
	}
}

func TestGuardedPageRedirectsGuest(t *testing.T) {
	f := newRouterFixture(t)

	w, _ := f.do(t, httptest.NewRequest(http.MethodGet, "/order/", nil))
	if w.Code != http.StatusFound {
		t.Fatalf("status want 302 got %d", w.Code)
	}
	if got := w.Header().Get("Location"); got != "/login/?next=%2Forder%2F" {
		t.Fatalf("unexpected location %s", got)
	}
}

func TestLoginWithWrongPassword(t *testing.T) {
	f := newRouterFixture(t)
	f.registerAndLogin(t, "bob", "13900139000")

	_, env := f.do(t, formRequest(http.MethodPost, "/login/", url.Values{
		"name":     {"bob"},
		"password": {"wrong-pass"},
	}, ""))
	if env.StatusCode != 401 {
		t.Fatalf("status_code want 401 got %d", env.StatusCode)
	}
	var logs int64
	f.db.Model(&models.UserLoginLog{}).Where("status = ?", "failed").Count(&logs)
	if logs != 1 {
		t.Fatalf("expected one failed login log, got %d", logs)
	}
}

func TestRegisterRejectsMismatchedPassword(t *testing.T) {
	f := newRouterFixture(t)

	_, env := f.do(t, formRequest(http.MethodPost, "/register/", url.Values{
		"name":       {"carol"},
		"email":      {"carol@campus.edu"},
		"phone":      {"13700137000"},
		"password":   {"secret123"},
		"repassword": {"secret124"},
	}, ""))
	if env.StatusCode != 400 {
		t.Fatalf("status_code want 400 got %d", env.StatusCode)
	}
	var data struct {
		Field string `json:"field"`
	}
	_ = json.Unmarshal(env.Data, &data)
	if data.Field != "repassword" {
		t.Fatalf("field want repassword got %q", data.Field)
	}
}

func TestAdminLoginAndListProducts(t *testing.T) {
	f := newRouterFixture(t)
	f.createProduct(t, "ruler", "2")
	admin, err := models.InitDefaultAdmin(f.db, "root", "secret123")
	if err != nil || admin == nil {
		t.Fatalf("init default admin failed: %v", err)
	}
	if err := f.container.AuthzService.BindOperator(admin.ID); err != nil {
		t.Fatalf("bind operator failed: %v", err)
	}

	_, env := f.do(t, jsonRequest(http.MethodGet, "/admin/products", "", ""))
	if env.StatusCode != 401 {
		t.Fatalf("anonymous admin request want 401 got %d", env.StatusCode)
	}

	_, env = f.do(t, jsonRequest(http.MethodPost, "/admin/login", `{"login":"root","password":"secret123"}`, ""))
	if env.StatusCode != 0 {
		t.Fatalf("admin login want 0 got %d msg=%s", env.StatusCode, env.Msg)
	}
	var login struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &login); err != nil || login.Token == "" {
		t.Fatalf("admin login token missing: %v", err)
	}

	_, env = f.do(t, jsonRequest(http.MethodGet, "/admin/products", "", login.Token))
	if env.StatusCode != 0 {
		t.Fatalf("list products want 0 got %d msg=%s", env.StatusCode, env.Msg)
	}
	var products []models.Product
	if err := json.Unmarshal(env.Data, &products); err != nil {
		t.Fatalf("unmarshal products failed: %v", err)
	}
	if len(products) != 1 || products[0].Name != "ruler" {
		t.Fatalf("unexpected products: %+v", products)
	}
}

func (f *routerFixture) adminLogin(t *testing.T, login, password string) string {
	t.Helper()
	_, env := f.do(t, jsonRequest(http.MethodPost, "/admin/login", fmt.Sprintf(`{"login":%q,"password":%q}`, login, password), ""))
	if env.StatusCode != 0 {
		t.Fatalf("admin login %s want 0 got %d msg=%s", login, env.StatusCode, env.Msg)
	}
	var data struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil || data.Token == "" {
		t.Fatalf("admin login token missing: %v", err)
	}
	return data.Token
}

func TestAdminDeleteRevokesRolesAndSessions(t *testing.T) {
	f := newRouterFixture(t)
	root, err := models.InitDefaultAdmin(f.db, "root", "secret123")
	if err != nil || root == nil {
		t.Fatalf("init default admin failed: %v", err)
	}
	if err := f.container.AuthzService.BindOperator(root.ID); err != nil {
		t.Fatalf("bind operator failed: %v", err)
	}
	rootToken := f.adminLogin(t, "root", "secret123")

	_, env := f.do(t, jsonRequest(http.MethodGet, "/admin/me", "", rootToken))
	var me struct {
		Roles    []string `json:"roles"`
		Policies []struct {
			Object string `json:"object"`
		} `json:"policies"`
	}
	if err := json.Unmarshal(env.Data, &me); err != nil {
		t.Fatalf("unmarshal me failed: %v", err)
	}
	if len(me.Roles) != 1 || me.Roles[0] != "role:operator" || len(me.Policies) == 0 {
		t.Fatalf("me should carry operator role and policies, got %+v", me)
	}

	_, env = f.do(t, jsonRequest(http.MethodPost, "/admin/admins", `{"name":"ops","login":"ops","password":"secret123"}`, rootToken))
	if env.StatusCode != 0 {
		t.Fatalf("create admin want 0 got %d msg=%s", env.StatusCode, env.Msg)
	}
	var created struct {
		ID uint `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil || created.ID == 0 {
		t.Fatalf("created admin id missing: %v", err)
	}
	opsToken := f.adminLogin(t, "ops", "secret123")

	_, env = f.do(t, jsonRequest(http.MethodDelete, fmt.Sprintf("/admin/admins/%d", root.ID), "", rootToken))
	if env.StatusCode != 400 {
		t.Fatalf("self delete want 400 got %d", env.StatusCode)
	}

	_, env = f.do(t, jsonRequest(http.MethodDelete, fmt.Sprintf("/admin/admins/%d", created.ID), "", rootToken))
	if env.StatusCode != 0 {
		t.Fatalf("delete admin want 0 got %d msg=%s", env.StatusCode, env.Msg)
	}
	roles, err := f.container.AuthzService.GetAdminRoles(created.ID)
	if err != nil || len(roles) != 0 {
		t.Fatalf("deleted admin roles should be empty, got %v err=%v", roles, err)
	}
	_, env = f.do(t, jsonRequest(http.MethodGet, "/admin/products", "", opsToken))
	if env.StatusCode != 401 {
		t.Fatalf("deleted admin token want 401 got %d", env.StatusCode)
	}

	_, env = f.do(t, jsonRequest(http.MethodDelete, fmt.Sprintf("/admin/admins/%d", created.ID), "", rootToken))
	if env.StatusCode != 404 {
		t.Fatalf("delete missing admin want 404 got %d", env.StatusCode)
	}
}

func TestLoginPageExposesCaptchaSetting(t *testing.T) {
	f := newRouterFixture(t)

	_, env := f.do(t, httptest.NewRequest(http.MethodGet, "/login/", nil))
	var data struct {
		CaptchaSetting struct {
			Provider string          `json:"provider"`
			Scenes   map[string]bool `json:"scenes"`
		} `json:"captcha_setting"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("unmarshal login page failed: %v", err)
	}
	if data.CaptchaSetting.Provider != "none" || data.CaptchaSetting.Scenes["login"] {
		t.Fatalf("default captcha setting should be disabled, got %+v", data.CaptchaSetting)
	}
}

func TestUserTokenCannotReachAdmin(t *testing.T) {
	f := newRouterFixture(t)
	token := f.registerAndLogin(t, "dave", "13600136000")

	_, env := f.do(t, jsonRequest(http.MethodGet, "/admin/products", "", token))
	if env.StatusCode != 401 {
		t.Fatalf("user token on admin want 401 got %d", env.StatusCode)
	}
}

func TestUnknownRouteReturnsNotFound(t *testing.T) {
	f := newRouterFixture(t)

	_, env := f.do(t, httptest.NewRequest(http.MethodGet, "/no/such/page/", nil))
	if env.StatusCode != 404 {
		t.Fatalf("status_code want 404 got %d", env.StatusCode)
	}
}

func TestHealthz(t *testing.T) {
	f := newRouterFixture(t)

	_, env := f.do(t, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if env.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d", env.StatusCode)
	}
}
