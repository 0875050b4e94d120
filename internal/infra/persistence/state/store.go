package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	appDirName    = "epicgamedata"
	stateFileName = "state.json"
)

// FormState 上一次提交的抓取请求,只保存请求本身,不保存抓取结果
type FormState struct {
	Lang []string `json:"lang"`
	Urls []string `json:"urls"`
}

type Store struct {
	path string
}

// NewStore path为空时使用用户配置目录下的 epicgamedata/state.json
func NewStore(path string) (*Store, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("获取用户配置目录失败: %w", err)
		}
		path = filepath.Join(dir, appDirName, stateFileName)
	}
	return &Store{path: path}, nil
}

func (s *Store) Path() string {
	return s.path
}

// Load 文件不存在时返回空状态
func (s *Store) Load() (*FormState, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &FormState{Lang: []string{}, Urls: []string{}}, nil
		}
		return nil, fmt.Errorf("读取状态文件失败: %w", err)
	}
	var st FormState
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("解析状态文件失败: %w", err)
	}
	if st.Lang == nil {
		st.Lang = []string{}
	}
	if st.Urls == nil {
		st.Urls = []string{}
	}
	return &st, nil
}

func (s *Store) Save(st *FormState) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("创建状态目录失败: %w", err)
	}
	// 先写临时文件再改名,避免中途退出留下半个文件
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("写入状态文件失败: %w", err)
	}
	return os.Rename(tmp, s.path)
}
