package repository

import (
	"database/sql/driver"
	"fmt"
	"strings"

	gosqlite "github.com/glebarez/go-sqlite"
	"gorm.io/gorm"
)

// likeEscapeChar LIKE 转义字符，选用 ! 以兼容 sqlite/postgres/mysql 的字面量规则
const likeEscapeChar = "!"

// sqliteFoldFunc sqlite 内置 LOWER 只处理 ASCII，注册按 Unicode 转小写的函数
const sqliteFoldFunc = "fold_lower"

func init() {
	gosqlite.MustRegisterDeterministicScalarFunction(sqliteFoldFunc, 1, foldLower)
}

func foldLower(_ *gosqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}

// dbDialectName 获取数据库方言名称，默认按 sqlite 处理。
func dbDialectName(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	name := strings.ToLower(strings.TrimSpace(db.Dialector.Name()))
	if name == "" {
		return "sqlite"
	}
	return name
}

// buildInsensitiveLikeCondition 构建多列不区分大小写的 LIKE 条件，并返回参数数量。
func buildInsensitiveLikeCondition(db *gorm.DB, columns ...string) (string, int) {
	return buildInsensitiveLikeConditionByDialect(dbDialectName(db), columns...)
}

func buildInsensitiveLikeConditionByDialect(dialect string, columns ...string) (string, int) {
	parts := make([]string, 0, len(columns))
	for _, column := range columns {
		trimmed := strings.TrimSpace(column)
		if trimmed == "" {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(dialect)) {
		case "postgres", "postgresql":
			parts = append(parts, fmt.Sprintf("%s ILIKE ? ESCAPE '%s'", trimmed, likeEscapeChar))
		case "mysql":
			parts = append(parts, fmt.Sprintf("LOWER(%s) LIKE ? ESCAPE '%s'", trimmed, likeEscapeChar))
		default:
			parts = append(parts, fmt.Sprintf("%s(%s) LIKE ? ESCAPE '%s'", sqliteFoldFunc, trimmed, likeEscapeChar))
		}
	}
	return strings.Join(parts, " OR "), len(parts)
}

// containsPattern 生成转义后的子串匹配模式（已转小写）。
func containsPattern(keyword string) string {
	replacer := strings.NewReplacer(
		likeEscapeChar, likeEscapeChar+likeEscapeChar,
		"%", likeEscapeChar+"%",
		"_", likeEscapeChar+"_",
	)
	return "%" + replacer.Replace(strings.ToLower(keyword)) + "%"
}

// repeatLikeArgs 生成重复的 LIKE 参数列表。
func repeatLikeArgs(like string, count int) []interface{} {
	args := make([]interface{}, 0, count)
	for i := 0; i < count; i++ {
		args = append(args, like)
	}
	return args
}

// whereKeyword 在 query 上追加关键字条件，关键字为空时原样返回。
func whereKeyword(query *gorm.DB, keyword string, columns ...string) *gorm.DB {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return query
	}
	condition, argCount := buildInsensitiveLikeCondition(query, columns...)
	if argCount == 0 {
		return query
	}
	return query.Where(condition, repeatLikeArgs(containsPattern(keyword), argCount)...)
}
