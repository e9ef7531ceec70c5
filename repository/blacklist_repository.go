package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"
)

// 黑名单落盘格式，跨运行保留
type blacklistFile struct {
	BlackCompanies  []string `json:"blackCompanies"`
	BlackRecruiters []string `json:"blackRecruiters"`
	BlackJobs       []string `json:"blackJobs"`
}

// BlacklistRepository 黑名单存储：公司、招聘者、岗位链接三个集合。
// 运行期间只增不删，启动时加载，结束（含异常退出路径）时保存。
type BlacklistRepository struct {
	path       string
	companies  map[string]struct{}
	recruiters map[string]struct{}
	jobs       map[string]struct{}
}

func NewBlacklistRepository(dataDir string) *BlacklistRepository {
	return &BlacklistRepository{
		path:       filepath.Join(dataDir, "data.json"),
		companies:  make(map[string]struct{}),
		recruiters: make(map[string]struct{}),
		jobs:       make(map[string]struct{}),
	}
}

// Load 加载黑名单文件，文件不存在视为空黑名单
func (r *BlacklistRepository) Load() error {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("读取黑名单文件失败: %w", err)
	}

	var f blacklistFile
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("解析黑名单文件失败: %w", err)
	}
	for _, v := range f.BlackCompanies {
		r.companies[v] = struct{}{}
	}
	for _, v := range f.BlackRecruiters {
		r.recruiters[v] = struct{}{}
	}
	for _, v := range f.BlackJobs {
		r.jobs[v] = struct{}{}
	}

	log.Infof("黑名单加载完成: 公司(%d) 招聘者(%d) 职位(%d)",
		len(r.companies), len(r.recruiters), len(r.jobs))
	return nil
}

// Save 排序后写回黑名单文件
func (r *BlacklistRepository) Save() error {
	f := blacklistFile{
		BlackCompanies:  sortedKeys(r.companies),
		BlackRecruiters: sortedKeys(r.recruiters),
		BlackJobs:       sortedKeys(r.jobs),
	}
	data, err := json.MarshalIndent(&f, "", "    ")
	if err != nil {
		return fmt.Errorf("序列化黑名单失败: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("创建数据目录失败: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("写入黑名单文件失败: %w", err)
	}
	return nil
}

func (r *BlacklistRepository) AddCompany(name string) {
	if name != "" {
		r.companies[name] = struct{}{}
	}
}

func (r *BlacklistRepository) AddRecruiter(name string) {
	if name != "" {
		r.recruiters[name] = struct{}{}
	}
}

func (r *BlacklistRepository) AddJob(link string) {
	if link != "" {
		r.jobs[link] = struct{}{}
	}
}

// HasJob 岗位链接精确匹配
func (r *BlacklistRepository) HasJob(link string) bool {
	_, ok := r.jobs[link]
	return ok
}

// HasRecruiter 招聘者名称精确匹配
func (r *BlacklistRepository) HasRecruiter(name string) bool {
	_, ok := r.recruiters[name]
	return ok
}

// MatchCompany 公司名按黑名单词条子串匹配
func (r *BlacklistRepository) MatchCompany(name string) bool {
	if name == "" {
		return false
	}
	for item := range r.companies {
		if strings.Contains(name, item) {
			return true
		}
	}
	return false
}

func (r *BlacklistRepository) Counts() (companies, recruiters, jobs int) {
	return len(r.companies), len(r.recruiters), len(r.jobs)
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
