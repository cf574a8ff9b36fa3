package workload

import "github.com/sarchlab/markbench/crc"

const (
	nilNode int32 = -1

	// listItemSize is the per-item memory cost the list is sized with: a
	// node of two 64-bit pointers plus its data record.
	listItemSize = 16 + 4

	// minListCapacity keeps the head, the tail sentinel and two items.
	minListCapacity = 4
)

type listData struct {
	data16 int16
	idx    int16
}

type listNode struct {
	next int32
	info int32
}

// linkedList is an arena of nodes and data records. Nodes link by index and
// point at their data record by index, so records can be swapped between
// nodes without moving them.
type linkedList struct {
	nodes []listNode
	data  []listData
	used  int32
}

func newList(blksize uint32, seed int16) (*linkedList, int32) {
	size := int32(blksize/listItemSize) - 2
	if size < minListCapacity {
		size = minListCapacity
	}

	l := &linkedList{
		nodes: make([]listNode, size),
		data:  make([]listData, size),
	}

	// Head and tail sentinels.
	head := int32(0)
	l.nodes[head] = listNode{next: nilNode, info: 0}
	l.data[0] = listData{data16: int16(-0x7f80), idx: 0} // 0x8080
	l.used = 1

	info := listData{data16: -1, idx: 0x7fff}
	l.insertNew(head, info)

	for i := uint32(0); i < uint32(size); i++ {
		datpat := uint16(uint32(int32(seed))^i) & 0xf
		dat := datpat<<3 | uint16(i&0x7)
		info.data16 = int16(dat<<8 | dat)
		l.insertNew(head, info)
	}

	// The first fifth of the list is indexed in order, the rest pseudo
	// randomly after it.
	finder := l.nodes[head].next
	i := uint32(1)
	for l.nodes[finder].next != nilNode {
		if i < uint32(size)/5 {
			l.data[l.nodes[finder].info].idx = int16(i)
			i++
		} else {
			pat := uint16(i ^ uint32(int32(seed)))
			i++
			l.data[l.nodes[finder].info].idx = int16(0x3fff & (uint16(i&0x07)<<8 | pat))
		}
		finder = l.nodes[finder].next
	}

	head = l.mergesort(head, l.cmpIdx)

	return l, head
}

// insertNew links a new item right after insertPoint. It returns nilNode
// once the arena is exhausted.
func (l *linkedList) insertNew(insertPoint int32, info listData) int32 {
	if l.used+1 >= int32(len(l.nodes)) {
		return nilNode
	}

	item := l.used
	l.used++

	l.nodes[item].next = l.nodes[insertPoint].next
	l.nodes[insertPoint].next = item
	l.nodes[item].info = item
	l.data[item] = info

	return item
}

func (l *linkedList) infoOf(n int32) *listData {
	return &l.data[l.nodes[n].info]
}

// find returns the first node whose index matches info.idx or, for a
// negative index, whose low data byte matches info.data16.
func (l *linkedList) find(n int32, info listData) int32 {
	if info.idx >= 0 {
		for n != nilNode && l.infoOf(n).idx != info.idx {
			n = l.nodes[n].next
		}
		return n
	}

	for n != nilNode && l.infoOf(n).data16&0xff != info.data16 {
		n = l.nodes[n].next
	}
	return n
}

func (l *linkedList) reverse(n int32) int32 {
	next := nilNode
	for n != nilNode {
		tmp := l.nodes[n].next
		l.nodes[n].next = next
		next = n
		n = tmp
	}
	return next
}

// remove unlinks the node after item, keeping item's data in the list by
// swapping data records. The removed node is returned for undoRemove.
func (l *linkedList) remove(item int32) int32 {
	ret := l.nodes[item].next

	l.nodes[item].info, l.nodes[ret].info = l.nodes[ret].info, l.nodes[item].info

	l.nodes[item].next = l.nodes[ret].next
	l.nodes[ret].next = nilNode

	return ret
}

func (l *linkedList) undoRemove(removed, modified int32) int32 {
	l.nodes[removed].info, l.nodes[modified].info = l.nodes[modified].info, l.nodes[removed].info

	l.nodes[removed].next = l.nodes[modified].next
	l.nodes[modified].next = removed

	return removed
}

type listCmp func(a, b *listData) int32

// cmpIdx orders by index and restores the low data byte from the high one,
// which drops any cached kernel result.
func (l *linkedList) cmpIdx(a, b *listData) int32 {
	a.data16 = int16(uint16(a.data16)&0xff00 | 0x00ff&uint16(a.data16>>8))
	b.data16 = int16(uint16(b.data16)&0xff00 | 0x00ff&uint16(b.data16>>8))
	return int32(a.idx) - int32(b.idx)
}

// mergesort is a stable bottom-up merge sort over the linked nodes.
func (l *linkedList) mergesort(list int32, cmp listCmp) int32 {
	insize := int32(1)

	for {
		p := list
		list = nilNode
		tail := nilNode
		nmerges := 0

		for p != nilNode {
			nmerges++

			q := p
			psize := int32(0)
			for i := int32(0); i < insize; i++ {
				psize++
				q = l.nodes[q].next
				if q == nilNode {
					break
				}
			}

			qsize := insize

			for psize > 0 || (qsize > 0 && q != nilNode) {
				var e int32
				switch {
				case psize == 0:
					e = q
					q = l.nodes[q].next
					qsize--
				case qsize == 0 || q == nilNode:
					e = p
					p = l.nodes[p].next
					psize--
				case cmp(l.infoOf(p), l.infoOf(q)) <= 0:
					e = p
					p = l.nodes[p].next
					psize--
				default:
					e = q
					q = l.nodes[q].next
					qsize--
				}

				if tail != nilNode {
					l.nodes[tail].next = e
				} else {
					list = e
				}
				tail = e
			}

			p = q
		}

		l.nodes[tail].next = nilNode

		if nmerges <= 1 {
			return list
		}

		insize *= 2
	}
}

// benchList searches the list Seed3 times, reversing it after every search,
// then sorts, removes and restores an item while checksumming the content.
func (w *Instance) benchList(finderIdx int16, sums *Checksums) uint16 {
	l := w.list
	list := w.head

	var retval, found, missed uint16
	info := listData{idx: finderIdx}

	for i := int16(0); i < w.seeds.Seed3; i++ {
		info.data16 = i & 0xff
		thisFind := l.find(list, info)
		list = l.reverse(list)

		if thisFind == nilNode {
			missed++
			retval += uint16(l.infoOf(l.nodes[list].next).data16>>8) & 1
		} else {
			found++
			if d := l.infoOf(thisFind).data16; d&0x1 != 0 {
				retval += uint16(d>>9) & 1
			}
			// Move the next item to the front of the list.
			if finder := l.nodes[thisFind].next; finder != nilNode {
				l.nodes[thisFind].next = l.nodes[finder].next
				l.nodes[finder].next = l.nodes[list].next
				l.nodes[list].next = finder
			}
		}

		if info.idx >= 0 {
			info.idx++
		}
	}

	retval += found*4 - missed

	if finderIdx > 0 {
		list = l.mergesort(list, func(a, b *listData) int32 {
			val1 := w.calc(&a.data16, sums)
			val2 := w.calc(&b.data16, sums)
			return int32(val1) - int32(val2)
		})
	}

	remover := l.remove(l.nodes[list].next)

	finder := l.find(list, info)
	if finder == nilNode {
		finder = l.nodes[list].next
	}
	for finder != nilNode {
		retval = crc.S16(l.infoOf(list).data16, retval)
		finder = l.nodes[finder].next
	}

	l.undoRemove(remover, l.nodes[list].next)

	list = l.mergesort(list, l.cmpIdx)

	for finder = l.nodes[list].next; finder != nilNode; finder = l.nodes[finder].next {
		retval = crc.S16(l.infoOf(list).data16, retval)
	}

	return retval
}
