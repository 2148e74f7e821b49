package common

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"

	json "github.com/json-iterator/go"
)

// StringList 有序字符串列表，入库和序列化时用逗号拼接
type StringList []string

// ParseStringList 按逗号拆分，去掉空白项
func ParseStringList(s string) StringList {
	list := StringList{}
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}

func (l StringList) String() string {
	return strings.Join(l, ",")
}

// Append 追加非空项，返回新列表
func (l StringList) Append(other StringList) StringList {
	out := make(StringList, 0, len(l)+len(other))
	for _, item := range l {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	for _, item := range other {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func (l *StringList) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*l = StringList{}
	case []byte:
		*l = ParseStringList(string(v))
	case string:
		*l = ParseStringList(v)
	default:
		return fmt.Errorf("unsupported type %T for StringList", value)
	}
	return nil
}

func (l StringList) Value() (driver.Value, error) {
	return l.String(), nil
}

func (l StringList) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON 接受 "a,b" 或 ["a","b"]
func (l *StringList) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*l = StringList{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = ParseStringList(s)
		return nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("invalid string list: %s", string(data))
	}
	*l = StringList{}.Append(items)
	return nil
}

// IDList 有序ID列表，存储形式为 "1,2,3"
type IDList []int64

func ParseIDList(s string) (IDList, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	list := IDList{}
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		id, err := strconv.ParseInt(item, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", item)
		}
		list = append(list, id)
	}
	return list, nil
}

func (l IDList) String() string {
	items := make([]string, len(l))
	for i, id := range l {
		items[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(items, ",")
}

// Distinct 去重，保留首次出现的位置
func (l IDList) Distinct() IDList {
	seen := make(map[int64]struct{}, len(l))
	out := make(IDList, 0, len(l))
	for _, id := range l {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (l IDList) Contains(id int64) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

func (l *IDList) Scan(value interface{}) error {
	var (
		list IDList
		err  error
	)
	switch v := value.(type) {
	case nil:
		list = IDList{}
	case []byte:
		list, err = ParseIDList(string(v))
	case string:
		list, err = ParseIDList(v)
	default:
		return fmt.Errorf("unsupported type %T for IDList", value)
	}
	if err != nil {
		return err
	}
	*l = list
	return nil
}

func (l IDList) Value() (driver.Value, error) {
	return l.String(), nil
}

func (l IDList) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON 接受 "1,2"、"[1,2]" 或 [1,2]
func (l *IDList) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*l = IDList{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		list, err := ParseIDList(s)
		if err != nil {
			return err
		}
		*l = list
		return nil
	}
	var ids []int64
	if err := json.Unmarshal(data, &ids); err != nil {
		return fmt.Errorf("invalid id list: %s", string(data))
	}
	*l = ids
	return nil
}
