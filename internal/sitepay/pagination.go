package sitepay

import (
	"context"
	"iter"
)

// PageFetcher получает страницу результатов по её номеру, сохраняя
// исходные параметры поиска.
type PageFetcher[T any] func(ctx context.Context, page int) (*List[T], error)

// List одна страница результатов поиска вместе со способом получить
// следующие. Элементы текущей страницы принадлежат списку; последующие
// страницы не кэшируются — каждая итерация запрашивает их заново.
//
// Список не рассчитан на конкурентный обход одного экземпляра из
// нескольких горутин.
type List[T any] struct {
	Items []T
	Page  *PageInfo

	fetch PageFetcher[T]
}

// NewList создаёт страницу результатов. fetch может быть nil — тогда
// доступна только текущая страница.
func NewList[T any](items []T, page *PageInfo, fetch PageFetcher[T]) *List[T] {
	return &List[T]{Items: items, Page: page, fetch: fetch}
}

// HasMore сообщает, есть ли за текущей страницей следующие.
func (l *List[T]) HasMore() bool {
	return l.Page != nil && l.Page.CurrentPageNumber < l.Page.PageCount
}

// Seq возвращает ленивую последовательность всех элементов: сначала
// элементы текущей страницы, затем — по мере обхода — элементы следующих.
// Повторная итерация начинается заново с удерживаемой первой страницы,
// не перезапрашивая её.
func (l *List[T]) Seq(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for _, item := range l.Items {
			if !yield(item, nil) {
				return
			}
		}
		current := l
		for current.HasMore() && current.fetch != nil {
			next, err := current.fetch(ctx, current.Page.CurrentPageNumber+1)
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			if next == nil || len(next.Items) == 0 {
				return
			}
			for _, item := range next.Items {
				if !yield(item, nil) {
					return
				}
			}
			current = next
		}
	}
}

// All собирает элементы всех страниц в порядке их поступления.
func (l *List[T]) All(ctx context.Context) ([]T, error) {
	var result []T
	for item, err := range l.Seq(ctx) {
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, nil
}

// Take возвращает не более n первых элементов последовательности.
func (l *List[T]) Take(ctx context.Context, n int) ([]T, error) {
	if n <= 0 {
		return nil, nil
	}
	var result []T
	for item, err := range l.Seq(ctx) {
		if err != nil {
			return nil, err
		}
		result = append(result, item)
		if len(result) == n {
			break
		}
	}
	return result, nil
}

// Find возвращает первый элемент, удовлетворяющий предикату.
func (l *List[T]) Find(ctx context.Context, pred func(T) bool) (T, bool, error) {
	for item, err := range l.Seq(ctx) {
		if err != nil {
			var zero T
			return zero, false, err
		}
		if pred(item) {
			return item, true, nil
		}
	}
	var zero T
	return zero, false, nil
}

// Filter возвращает все элементы, удовлетворяющие предикату,
// сохраняя порядок страниц.
func (l *List[T]) Filter(ctx context.Context, pred func(T) bool) ([]T, error) {
	var result []T
	for item, err := range l.Seq(ctx) {
		if err != nil {
			return nil, err
		}
		if pred(item) {
			result = append(result, item)
		}
	}
	return result, nil
}

// FetchPage запрашивает конкретную страницу. Возвращает ok=false, когда
// страница недоступна в принципе (номер меньше 1 или список не умеет
// запрашивать страницы) — это не ошибка. Запрос уже удерживаемой текущей
// страницы возвращает тот же экземпляр без сетевого вызова.
func (l *List[T]) FetchPage(ctx context.Context, page int) (*List[T], bool, error) {
	if page < 1 || l.fetch == nil {
		return nil, false, nil
	}
	if l.Page != nil && page == l.Page.CurrentPageNumber {
		return l, true, nil
	}
	next, err := l.fetch(ctx, page)
	if err != nil {
		return nil, false, err
	}
	return next, true, nil
}

// MapAll применяет fn к каждому элементу всех страниц.
func MapAll[T, U any](ctx context.Context, l *List[T], fn func(T) U) ([]U, error) {
	var result []U
	for item, err := range l.Seq(ctx) {
		if err != nil {
			return nil, err
		}
		result = append(result, fn(item))
	}
	return result, nil
}
