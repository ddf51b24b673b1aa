// models — доменные сущности клиента: блюда, ларьки и их «социальное» состояние
// (закладки, лайки/дизлайки, реакция текущего пользователя).
package models

// Entity — сущность со стабильной идентичностью.
// Две записи с одинаковым Key — это одна и та же сущность, независимо от того,
// из какого запроса они пришли.
type Entity interface {
	Key() string
}
