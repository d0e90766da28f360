package api

import (
	"sort"

	"campus/models"
)

// PageTreeNode 页面树节点
type PageTreeNode struct {
	ID       uint            `json:"id"`
	Title    string          `json:"title"`
	Slug     string          `json:"slug"`
	Position int             `json:"position"`
	Status   string          `json:"status"`
	MenuID   *uint           `json:"menu_id"`
	ParentID *uint           `json:"parent_id"`
	Children []*PageTreeNode `json:"children,omitempty"`
}

// buildPageTree 把扁平的页面列表组装成森林：
// parent_id 为空的是根节点，parent_id 指向的父页面不在列表中时该页面被静默丢弃，
// 每一层按 position ASC, id ASC 排序。后台树和前台树共用此函数
func buildPageTree(pages []models.Page) []*PageTreeNode {
	nodes := make(map[uint]*PageTreeNode, len(pages))
	for _, p := range pages {
		nodes[p.ID] = &PageTreeNode{
			ID:       p.ID,
			Title:    p.Title,
			Slug:     p.Slug,
			Position: p.Position,
			Status:   p.Status,
			MenuID:   p.MenuID,
			ParentID: p.ParentID,
		}
	}

	roots := make([]*PageTreeNode, 0)
	for _, p := range pages {
		node := nodes[p.ID]
		if p.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[*p.ParentID]
		if !ok || parent == node {
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	sortPageTree(roots)
	return roots
}

// sortPageTree 递归排序每一层的兄弟节点
func sortPageTree(nodes []*PageTreeNode) {
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].Position != nodes[j].Position {
			return nodes[i].Position < nodes[j].Position
		}
		return nodes[i].ID < nodes[j].ID
	})
	for _, n := range nodes {
		sortPageTree(n.Children)
	}
}

// collectPageDescendantIDs 收集 rootID 的所有子孙页面 ID，用于移动时的环检测
func collectPageDescendantIDs(pages []models.Page, rootID uint) map[uint]bool {
	byParent := make(map[uint][]models.Page)
	for _, p := range pages {
		if p.ParentID == nil {
			continue
		}
		byParent[*p.ParentID] = append(byParent[*p.ParentID], p)
	}
	set := make(map[uint]bool)
	var dfs func(id uint)
	dfs = func(id uint) {
		for _, child := range byParent[id] {
			if set[child.ID] {
				continue
			}
			set[child.ID] = true
			dfs(child.ID)
		}
	}
	dfs(rootID)
	return set
}
