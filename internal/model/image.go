package model

// Image 是列表页的展示模型；URL 由文件名推导，不单独持久化
type Image struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Gallery 是图片页的模板数据
type Gallery struct {
	Images  []Image
	Page    int
	HasNext bool
}

// DeleteResult 是批量删除的结果；每个输入名恰好落在两个列表之一
type DeleteResult struct {
	Deleted  []string `json:"deleted"`
	NotFound []string `json:"not_found"`
}
